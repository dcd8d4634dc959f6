package assert

import (
	"testing"

	"github.com/oomph-ac/kcc/oerror"
	"github.com/stretchr/testify/require"
)

func TestIsTrue(t *testing.T) {
	require.NotPanics(t, func() { IsTrue(true, "never") })

	defer func() {
		r := recover()
		err, ok := r.(*oerror.Error)
		require.True(t, ok)
		require.Equal(t, "bad shape radius=-1", err.Error())
	}()
	IsTrue(false, "bad shape radius=%v", -1)
}
