package elastic

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	knnOversampleFactor = 10
	minKNNCandidates    = 100
)

// oversample sizes the knn candidate pool relative to the requested
// result count, with a floor that keeps small queries accurate.
func oversample(topK int) int {
	candidates := topK * knnOversampleFactor
	if candidates < minKNNCandidates {
		return minKNNCandidates
	}
	return candidates
}

// newRecordID generates a sortable record identifier: a millisecond
// timestamp followed by a short random suffix.
func newRecordID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
