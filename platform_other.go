//go:build !android

package jvmgetter

const symbolHidden = false
