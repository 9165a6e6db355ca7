package model_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
)

func TestChecksum(t *testing.T) {
	t.Run("unknown renders the placeholder", func(t *testing.T) {
		c := model.UnknownChecksum()
		gt.False(t, c.IsVerified())
		gt.Value(t, c.String()).Equal(model.ChecksumPlaceholder)
		gt.Value(t, c.Digest()).Equal("")
	})

	t.Run("verified renders the digest", func(t *testing.T) {
		digest := strings.Repeat("deadbeef", 16)
		c, err := model.VerifiedChecksum(digest)
		gt.NoError(t, err)
		gt.True(t, c.IsVerified())
		gt.Value(t, c.String()).Equal(digest)
	})

	t.Run("non-hex digest is rejected", func(t *testing.T) {
		_, err := model.VerifiedChecksum("not-a-digest")
		gt.Error(t, err)
	})

	t.Run("empty digest is rejected", func(t *testing.T) {
		_, err := model.VerifiedChecksum("")
		gt.Error(t, err)
	})

	t.Run("placeholder is never verified", func(t *testing.T) {
		_, err := model.VerifiedChecksum(model.ChecksumPlaceholder)
		gt.Error(t, err)
	})

	t.Run("digest of the wrong length is rejected", func(t *testing.T) {
		for _, digest := range []string{"abcdef", strings.Repeat("a", 127), strings.Repeat("a", 129)} {
			_, err := model.VerifiedChecksum(digest)
			gt.Error(t, err)
		}
	})
}
