//go:build goloader

package main

import "github.com/ZenLiuCN/jvmgetter/hostimage"

func init() {
	hostImage = hostimage.Strategy{}
}
