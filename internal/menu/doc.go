// Package menu implements the interactive front end: the title banner, the
// numbered template menu, and the two prompts that collect a selector and a
// project name.
package menu
