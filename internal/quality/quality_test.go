package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	info := Detect("The.Man.from.U.N.C.L.E.2015.1080p.BluRay.x264-SPARKS")

	assert.Equal(t, "1080p", info.Resolution)
	assert.Equal(t, "SPARKS", info.Group)
	assert.False(t, info.Empty())
	assert.Contains(t, info.Summary(), "1080p")
}

func TestDetectNoTags(t *testing.T) {
	info := Detect("Unbreakable")

	assert.Empty(t, info.Resolution)
	assert.Empty(t, info.Codec)
	assert.True(t, info.Empty())
}

func TestSummaryOrder(t *testing.T) {
	info := Info{
		Resolution: "2160p",
		Source:     "WEB-DL",
		HDR:        []string{"DV"},
		Codec:      []string{"H.265"},
		Audio:      []string{"DDP", "Atmos"},
		Channels:   "5.1",
	}

	assert.Equal(t, "2160p WEB-DL DV H.265 DDP Atmos 5.1", info.Summary())
}
