package classify

import (
	"golang.org/x/text/language"

	"github.com/squash/subtidy/internal/subtitle"
	"github.com/squash/subtidy/pkg/log"
)

// VerifyLanguage compares a subtitle's detected content language against the
// language tag its filename claims. Diagnostic only: a mismatch is logged
// and reported, never acted on, since heuristic detection is noisy on short
// or dialogue-light tracks.
func VerifyLanguage(f *subtitle.File, claimedTag string) bool {
	if f == nil || len(f.Lines) == 0 || claimedTag == "" {
		return true
	}

	claimed, err := language.Parse(claimedTag)
	if err != nil {
		return true
	}

	detected := f.Language
	if detected == language.Und {
		detected = subtitle.DetectLanguage(f.Lines)
	}
	if detected == language.Und {
		return true
	}

	claimedBase, confA := claimed.Base()
	detectedBase, confB := detected.Base()
	if confA == language.No || confB == language.No {
		return true
	}

	if claimedBase != detectedBase {
		log.Warn("Content language %s does not match filename tag %s", detectedBase, claimedTag)
		return false
	}
	return true
}
