// Package replay feeds recorded network lifecycle events through the
// capture core, for offline debugging of path configurations against saved
// traffic.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
)

// maxLineSize bounds a single recorded event; SDK bodies are small but
// batched payloads can run long.
const maxLineSize = 4 * 1024 * 1024

// ReadFile streams NDJSON-encoded NetworkEvents from a capture file,
// invoking fn for each decoded event in file order. Blank lines are
// skipped; malformed lines are counted and skipped, not fatal. Returns the
// number of events delivered and the number of lines skipped.
func ReadFile(path string, fn func(model.NetworkEvent)) (delivered, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open capture file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev model.NetworkEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			skipped++
			continue
		}

		fn(ev)
		delivered++
	}

	if err := scanner.Err(); err != nil {
		return delivered, skipped, fmt.Errorf("failed to read capture file: %w", err)
	}
	return delivered, skipped, nil
}
