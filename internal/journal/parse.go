package journal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Iron-Ham/postoffice/internal/errors"
)

// Parse reads a journal back into entries, in file order. Empty lines are
// skipped; any other line that does not match a known format is an error.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		e, err := ParseLine(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d of input", n)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return entries, nil
}

// ParseLine parses one rendered journal line.
func ParseLine(text string) (Entry, error) {
	malformed := func(reason string) (Entry, error) {
		return Entry{}, fmt.Errorf("%w: %s: %q", errors.ErrMalformedLine, reason, text)
	}

	num, rest, ok := strings.Cut(text, ": ")
	if !ok {
		return malformed("missing line number")
	}
	line, err := strconv.ParseUint(num, 10, 64)
	if err != nil || line == 0 {
		return malformed("bad line number")
	}

	if rest == "closing" {
		return Entry{Line: line, Action: OfficeClosing}, nil
	}

	actor, msg, ok := strings.Cut(rest, ": ")
	if !ok {
		return malformed("missing actor")
	}
	tagStr, idStr, ok := strings.Cut(actor, " ")
	if !ok {
		return malformed("bad actor")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return malformed("bad actor id")
	}

	tag := Tag(tagStr)
	if tag != TagClient && tag != TagWorker {
		return malformed("unknown actor tag")
	}

	for action, info := range actions {
		if info.tag != tag {
			continue
		}
		if !info.service {
			if msg == info.message {
				return Entry{Line: line, Action: action, ActorID: id}, nil
			}
			continue
		}
		if svcStr, found := strings.CutPrefix(msg, info.message); found {
			svc, err := strconv.Atoi(svcStr)
			if err != nil || svc < 1 || svc > MaxService {
				return malformed("bad service type")
			}
			return Entry{Line: line, Action: action, ActorID: id, Service: svc}, nil
		}
	}
	return malformed("unknown message")
}
