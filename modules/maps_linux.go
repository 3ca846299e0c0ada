//go:build linux

package modules

import (
	"github.com/prometheus/procfs"
	"strings"
)

// Maps enumerates modules from /proc/self/maps. Each absolute path is reported once, at its
// lowest mapping, with the bias taken as start address minus file offset.
type Maps struct {
	// Root is the procfs mount point, procfs.DefaultMountPoint when empty.
	Root string
}

func (m Maps) Walk(visit Visitor) (err error) {
	root := m.Root
	if root == "" {
		root = procfs.DefaultMountPoint
	}
	var fs procfs.FS
	if fs, err = procfs.NewFS(root); err != nil {
		return
	}
	var self procfs.Proc
	if self, err = fs.Self(); err != nil {
		return
	}
	var maps []*procfs.ProcMap
	if maps, err = self.ProcMaps(); err != nil {
		return
	}
	seen := make(map[string]struct{})
	for _, pm := range maps {
		if !strings.HasPrefix(pm.Pathname, "/") {
			continue
		}
		if _, ok := seen[pm.Pathname]; ok {
			continue
		}
		seen[pm.Pathname] = struct{}{}
		if visit(Module{LoadBias: pm.StartAddr - uintptr(pm.Offset), Path: pm.Pathname}) {
			return
		}
	}
	return
}
