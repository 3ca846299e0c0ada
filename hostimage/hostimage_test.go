//go:build goloader

package hostimage

import (
	"testing"

	"github.com/ZenLiuCN/jvmgetter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var _ jvmgetter.Strategy = Strategy{}

func TestFindMissing(t *testing.T) {
	_, err := Strategy{}.Find("JNI_GetCreatedJavaVMs_not_linked")
	if errors.Is(err, jvmgetter.ErrUnreadable) {
		t.Skipf("test binary symbol table: %v", err)
	}
	require.ErrorIs(t, err, jvmgetter.ErrSymbolNotFound)
}

func TestResolverChain(t *testing.T) {
	r := jvmgetter.NewResolver(jvmgetter.WithPlatform(jvmgetter.Platform{}), jvmgetter.WithStrategy(Strategy{}))
	require.Equal(t, []string{"host-image"}, r.Strategies())
}
