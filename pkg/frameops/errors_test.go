package frameops

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"tomyframe/pkg/engine/types"
)

func TestOpErrorMessage(t *testing.T) {
	err := rowError("delete_row", 7, errors.Wrap(types.ErrIndexOutOfRange, "frame has 3 rows"))
	require.Equal(t, "delete_row row 7: frame has 3 rows: index out of range", err.Error())
	require.True(t, errors.Is(err, types.ErrIndexOutOfRange))

	err = columnError("normalize", "score", types.ErrTypeMismatch)
	require.Equal(t, `normalize column "score": type mismatch`, err.Error())
}
