// Package generator scaffolds a Blade Engine project. It turns the built-in
// template into an ordered plan of filesystem steps (create directories, emit
// files, clone the engine, relocate assets, clean up the clone), executes the
// plan while recording every completed step, and on failure undoes the
// recorded steps in reverse order.
//
// Run is the entry point used by both the interactive menu and the `new`
// command:
//
//	paths, err := generator.Run(ctx, generator.Options{Selection: "1", Name: "Demo"})
//
// Errors are *Error values carrying a Kind (AlreadyExists, IOFailure,
// NetworkFailure, MissingSourceAsset, InvalidInput) and match the
// corresponding sentinel with errors.Is.
package generator
