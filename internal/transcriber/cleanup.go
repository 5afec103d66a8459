package transcriber

import (
	"context"
	"errors"
	"os"
)

// cleanupTempFile removes a temporary file, logs warning if fails
func (t *implTranscriber) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
		}
		return
	}
	t.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
}
