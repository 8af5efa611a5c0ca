package platform

import (
	"errors"
	"runtime"
	"syscall"
)

// errorNotSameDevice is ERROR_NOT_SAME_DEVICE, returned by MoveFileEx on
// Windows when source and destination are on different volumes.
const errorNotSameDevice syscall.Errno = 17

// IsCrossDevice reports whether err came from a rename across filesystems.
func IsCrossDevice(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EXDEV) {
		return true
	}
	var errno syscall.Errno
	return runtime.GOOS == "windows" && errors.As(err, &errno) && errno == errorNotSameDevice
}
