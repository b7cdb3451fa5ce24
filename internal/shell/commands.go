package shell

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tychoish/strq"
)

type command struct {
	name  string
	usage string
	help  string
	run   func(s *Shell, args []string) error
}

func builtins() map[string]*command {
	table := []*command{
		{name: "new", usage: "new", help: "Create new queue", run: (*Shell).cmdNew},
		{name: "free", usage: "free", help: "Delete current queue", run: (*Shell).cmdFree},
		{name: "ih", usage: "ih str [n]", help: "Insert string str at head of queue n times (default 1)", run: insertCmd((*strq.Queue).InsertHead)},
		{name: "it", usage: "it str [n]", help: "Insert string str at tail of queue n times (default 1)", run: insertCmd((*strq.Queue).InsertTail)},
		{name: "rh", usage: "rh [str]", help: "Remove from head of queue, optionally compare to expected value str", run: removeCmd((*strq.Queue).RemoveHead)},
		{name: "rt", usage: "rt [str]", help: "Remove from tail of queue, optionally compare to expected value str", run: removeCmd((*strq.Queue).RemoveTail)},
		{name: "size", usage: "size", help: "Compute queue size", run: (*Shell).cmdSize},
		{name: "show", usage: "show", help: "Show every queue", run: (*Shell).cmdShow},
		{name: "dm", usage: "dm", help: "Delete middle node in queue", run: boolCmd("delete middle", (*strq.Queue).DeleteMiddle)},
		{name: "dedup", usage: "dedup", help: "Delete all nodes that have duplicate string", run: boolCmd("delete duplicates", (*strq.Queue).DeleteDuplicates)},
		{name: "swap", usage: "swap", help: "Swap every two adjacent nodes in queue", run: voidCmd((*strq.Queue).SwapPairs)},
		{name: "reverse", usage: "reverse", help: "Reverse queue", run: voidCmd((*strq.Queue).Reverse)},
		{name: "reverseK", usage: "reverseK [K]", help: "Reverse the nodes of the queue K at a time (default 2)", run: (*Shell).cmdReverseK},
		{name: "sort", usage: "sort", help: "Sort queue in ascending/descending order", run: (*Shell).cmdSort},
		{name: "ascend", usage: "ascend", help: "Remove every node which has a node with a strictly less value anywhere to the right side of it", run: countCmd((*strq.Queue).Ascend)},
		{name: "descend", usage: "descend", help: "Remove every node which has a node with a strictly greater value anywhere to the right side of it", run: countCmd((*strq.Queue).Descend)},
		{name: "merge", usage: "merge", help: "Merge all the queues into one sorted queue", run: (*Shell).cmdMerge},
		{name: "prev", usage: "prev", help: "Switch to previous queue", run: (*Shell).cmdPrev},
		{name: "next", usage: "next", help: "Switch to next queue", run: (*Shell).cmdNext},
		{name: "option", usage: "option [name value]", help: "Display or set options", run: (*Shell).cmdOption},
		{name: "source", usage: "source file", help: "Read commands from source file", run: (*Shell).cmdSource},
		{name: "help", usage: "help", help: "Show summary of commands", run: (*Shell).cmdHelp},
		{name: "quit", usage: "quit", help: "Exit program", run: (*Shell).cmdQuit},
	}

	out := make(map[string]*command, len(table))
	for _, cmd := range table {
		out[cmd.name] = cmd
	}
	return out
}

func noArgs(args []string) error {
	if len(args) != 0 {
		return errors.Wrapf(ErrUsage, "unexpected arguments %q", args)
	}
	return nil
}

func (s *Shell) cmdNew(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	s.current = s.chain.Add(strq.New())
	s.refresh()
	return nil
}

func (s *Shell) cmdFree(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if s.current == nil {
		return ErrNoQueue
	}

	freed := s.current
	next := s.chain.Prev(freed)
	if next == freed {
		next = nil
	}
	s.chain.Remove(freed)
	freed.Queue.Free()

	s.current = next
	s.refresh()
	return nil
}

func insertCmd(insert func(*strq.Queue, string) bool) func(*Shell, []string) error {
	return func(s *Shell, args []string) error {
		if len(args) < 1 || len(args) > 2 {
			return ErrUsage
		}
		count := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return errors.Wrapf(ErrUsage, "invalid count %q", args[1])
			}
			count = n
		}

		q, err := s.queue()
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if !insert(q, args[0]) {
				return errors.Errorf("insertion of %q failed", args[0])
			}
		}
		s.refresh()
		return nil
	}
}

func removeCmd(remove func(*strq.Queue, []byte) *strq.Element) func(*Shell, []string) error {
	return func(s *Shell, args []string) error {
		if len(args) > 1 {
			return ErrUsage
		}
		q, err := s.queue()
		if err != nil {
			return err
		}

		buf := make([]byte, s.opts.Length)
		elem := remove(q, buf)
		if elem == nil {
			return ErrEmptyQueue
		}
		defer strq.Release(elem)

		got := strq.CString(buf)
		if len(args) == 1 {
			expect := args[0]
			if len(expect) > s.opts.Length-1 {
				expect = expect[:s.opts.Length-1]
			}
			if got != expect {
				s.refresh()
				return errors.Wrapf(ErrMismatch, "removed %q, expected %q", got, expect)
			}
		}

		s.ok("Removed %s from queue", got)
		s.refresh()
		return nil
	}
}

func (s *Shell) cmdSize(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	q, err := s.queue()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Queue size = %d\n", q.Size())
	s.refresh()
	return nil
}

func (s *Shell) cmdShow(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if s.chain.Len() == 0 {
		fmt.Fprintln(s.out, "l = NULL")
		return nil
	}
	for ctx := range s.chain.All() {
		marker := " "
		if ctx == s.current {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%sq %d: %s\n", marker, ctx.ID, s.format(ctx.Queue))
	}
	return nil
}

func boolCmd(name string, op func(*strq.Queue) bool) func(*Shell, []string) error {
	return func(s *Shell, args []string) error {
		if err := noArgs(args); err != nil {
			return err
		}
		q, err := s.queue()
		if err != nil {
			return err
		}
		if !op(q) {
			s.refresh()
			return errors.Errorf("%s: nothing to do on a queue of %d", name, q.Size())
		}
		s.refresh()
		return nil
	}
}

func voidCmd(op func(*strq.Queue)) func(*Shell, []string) error {
	return func(s *Shell, args []string) error {
		if err := noArgs(args); err != nil {
			return err
		}
		q, err := s.queue()
		if err != nil {
			return err
		}
		op(q)
		s.refresh()
		return nil
	}
}

func countCmd(op func(*strq.Queue) int) func(*Shell, []string) error {
	return func(s *Shell, args []string) error {
		if err := noArgs(args); err != nil {
			return err
		}
		q, err := s.queue()
		if err != nil {
			return err
		}
		remaining := op(q)
		s.ok("%d element(s) remain", remaining)
		s.refresh()
		return nil
	}
}

func (s *Shell) cmdReverseK(args []string) error {
	k := 2
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errors.Wrapf(ErrUsage, "invalid K %q", args[0])
		}
		k = n
	default:
		return ErrUsage
	}
	q, err := s.queue()
	if err != nil {
		return err
	}
	q.ReverseK(k)
	s.refresh()
	return nil
}

func (s *Shell) cmdSort(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	q, err := s.queue()
	if err != nil {
		return err
	}
	q.Sort(s.opts.Descend)
	s.refresh()
	return nil
}

func (s *Shell) cmdMerge(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if s.current == nil {
		return ErrNoQueue
	}

	total := strq.MergeAll(&s.chain, s.opts.Descend)

	first := s.chain.First()
	for ctx := range s.chain.All() {
		if ctx != first {
			s.chain.Remove(ctx)
			ctx.Queue.Free()
		}
	}
	s.current = first
	s.ok("Merged %d element(s)", total)
	s.refresh()
	return nil
}

func (s *Shell) cmdPrev(args []string) error { return s.switchTo(args, s.chain.Prev) }
func (s *Shell) cmdNext(args []string) error { return s.switchTo(args, s.chain.Next) }

func (s *Shell) switchTo(args []string, step func(*strq.Context) *strq.Context) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if s.current == nil {
		return ErrNoQueue
	}
	s.current = step(s.current)
	s.refresh()
	return nil
}

func (s *Shell) cmdOption(args []string) error {
	switch len(args) {
	case 0:
		s.opts.write(s.out)
		return nil
	case 2:
		if err := s.opts.Set(args[0], args[1]); err != nil {
			return err
		}
		s.log.Debug("option", zap.String("name", args[0]), zap.String("value", args[1]))
		return nil
	default:
		return ErrUsage
	}
}

func (s *Shell) cmdSource(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return s.Source(s.ctx, args[0])
}

func (s *Shell) cmdHelp(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	s.help()
	return nil
}

func (s *Shell) cmdQuit(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	s.done = true
	return nil
}
