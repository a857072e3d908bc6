//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || windows)

package store

import "os"

// Platforms without flock or LockFileEx run unlocked; the atomic rename
// still prevents torn files.
func tryLock(*os.File) (bool, error) { return true, nil }

func unlock(*os.File) error { return nil }
