//go:build !windows && !linux

package logger

import "syscall"

// tcgets is the ioctl request number for getting terminal attributes on BSD
// and Darwin, where it is named TIOCGETA instead of Linux's TCGETS.
const tcgets = syscall.TIOCGETA
