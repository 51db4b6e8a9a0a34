package input

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
)

// Script is a recorded input session split into frames. Each frame is the batch of
// events the app loop processes before it renders.
type Script struct {
	Frames [][]Event
}

// Events returns all events in order, ignoring frame boundaries.
func (s Script) Events() []Event {
	var out []Event
	for _, frame := range s.Frames {
		out = append(out, frame...)
	}
	return out
}

// ParseScript reads one command per line:
//
//	down X Y | move X Y | up | frame [N] | clear | save | gallery | quit
//
// "frame" ends the current batch; "frame N" ends it and appends N-1 empty frames.
// Blank lines and lines starting with '#' are skipped.
func ParseScript(r io.Reader) (Script, error) {
	var script Script
	var current []Event
	pending := false

	flush := func() {
		script.Frames = append(script.Frames, current)
		current = nil
		pending = false
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		command := strings.ToLower(fields[0])
		args := fields[1:]

		switch command {
		case "down", "move":
			pos, err := parsePoint(args)
			if err != nil {
				return Script{}, fmt.Errorf("line %d: %s: %w", lineNo, command, err)
			}
			kind := PointerDown
			if command == "move" {
				kind = PointerMove
			}
			current = append(current, Event{Kind: kind, Pos: pos})
			pending = true
		case "up", "clear", "save", "gallery", "quit":
			if len(args) != 0 {
				return Script{}, fmt.Errorf("line %d: %s takes no arguments", lineNo, command)
			}
			current = append(current, Event{Kind: keywordKinds[command]})
			pending = true
		case "frame":
			count := 1
			if len(args) > 1 {
				return Script{}, fmt.Errorf("line %d: frame takes at most one argument", lineNo)
			}
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return Script{}, fmt.Errorf("line %d: invalid frame count %q", lineNo, args[0])
				}
				count = n
			}
			flush()
			for i := 1; i < count; i++ {
				flush()
			}
		default:
			return Script{}, fmt.Errorf("line %d: unknown command %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return Script{}, err
	}
	if pending {
		flush()
	}
	return script, nil
}

var keywordKinds = map[string]Kind{
	"up":      PointerUp,
	"clear":   Clear,
	"save":    Save,
	"gallery": Gallery,
	"quit":    Quit,
}

func parsePoint(args []string) (image.Point, error) {
	if len(args) != 2 {
		return image.Point{}, fmt.Errorf("expected X Y, got %d values", len(args))
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid x %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid y %q", args[1])
	}
	return image.Pt(x, y), nil
}
