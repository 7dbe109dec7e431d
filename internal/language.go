package internal

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// languageSampleSize caps how much text is handed to the detector
const languageSampleSize = 64 * 1024

// DetectLanguage guesses the dominant language of the transcript from the
// text of its ordinary messages. It returns "" when the guess is unreliable.
func DetectLanguage(msgs []Message) string {
	var b strings.Builder
	for i := range msgs {
		if msgs[i].IsMedia || msgs[i].IsDeleted || msgs[i].WordCount == 0 {
			continue
		}
		b.WriteString(msgs[i].Content)
		b.WriteByte('\n')
		if b.Len() >= languageSampleSize {
			break
		}
	}
	if b.Len() == 0 {
		return ""
	}

	info := whatlanggo.Detect(b.String())
	if !info.IsReliable() {
		LogDebug("language detection unreliable (%s, confidence %.2f)", info.Lang.String(), info.Confidence)
		return ""
	}
	return info.Lang.Iso6393()
}
