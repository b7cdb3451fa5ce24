package shell

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// DefaultLength is the size of the buffer used to receive values
// removed from a queue.
const DefaultLength = 1024

// Options control the behavior of the shell. They can be set from
// the command line, the environment, a config file, or the option
// command.
type Options struct {
	// Length is the size of the removal buffer, including the
	// terminating zero byte; longer values are truncated.
	Length int
	// Descend sorts and merges in descending order.
	Descend bool
	// Echo prints each command before running it.
	Echo bool
	// Strict stops a script at the first failing command.
	Strict bool
	// Width truncates values wider than this many columns when
	// printing queues. Zero disables truncation.
	Width int
}

func (o Options) withDefaults() Options {
	if o.Length <= 0 {
		o.Length = DefaultLength
	}
	return o
}

// Set changes an option by name, parsing the value the way the
// option command does.
func (o *Options) Set(name, value string) error {
	switch name {
	case "length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 2 {
			return errors.Wrapf(ErrUsage, "length must be an integer >= 2, got %q", value)
		}
		o.Length = n
	case "width":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return errors.Wrapf(ErrUsage, "width must be a non-negative integer, got %q", value)
		}
		o.Width = n
	case "descend", "echo", "strict":
		flag, err := parseFlag(value)
		if err != nil {
			return errors.Wrapf(ErrUsage, "%s: %v", name, err)
		}
		*o.flag(name) = flag
	default:
		return errors.Wrapf(ErrUsage, "unknown option %q", name)
	}
	return nil
}

func (o *Options) flag(name string) *bool {
	switch name {
	case "descend":
		return &o.Descend
	case "echo":
		return &o.Echo
	default:
		return &o.Strict
	}
}

func (o Options) values() map[string]string {
	return map[string]string{
		"length":  strconv.Itoa(o.Length),
		"width":   strconv.Itoa(o.Width),
		"descend": formatFlag(o.Descend),
		"echo":    formatFlag(o.Echo),
		"strict":  formatFlag(o.Strict),
	}
}

func (o Options) write(w io.Writer) {
	values := o.values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, values[name])
	}
}

func parseFlag(value string) (bool, error) {
	switch value {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return strconv.ParseBool(value)
	}
}

func formatFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
