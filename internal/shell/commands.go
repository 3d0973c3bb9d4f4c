package shell

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	domainorg "github.com/zjrosen/orgchart/internal/domain/orgchart"
)

func (s *Shell) buildCommands() map[string]command {
	return map[string]command{
		"add": {
			usage: "add <id> <name> [manager-id]",
			help:  "track a new employee, optionally under a manager",
			run:   s.cmdAdd,
		},
		"move": {
			usage: "move <id> <manager-id>",
			help:  "move an employee and its reports under another manager",
			run:   s.cmdMove,
		},
		"remove": {
			usage: "remove <id>",
			help:  "remove an employee; its reports move up a level",
			run:   s.cmdRemove,
		},
		"count": {
			usage: "count <id>",
			help:  "count direct and indirect reports",
			run:   s.cmdCount,
		},
		"print": {
			usage: "print",
			help:  "print the whole org chart",
			run:   s.cmdPrint,
		},
		"show": {
			usage: "show <id>",
			help:  "show one employee with its manager and direct reports",
			run:   s.cmdShow,
		},
		"roots": {
			usage: "roots",
			help:  "list employees without a manager",
			run:   s.cmdRoots,
		},
		"metrics": {
			usage: "metrics",
			help:  "print operation metrics",
			run:   s.cmdMetrics,
		},
		"help": {
			usage: "help",
			help:  "list commands",
			run:   s.cmdHelp,
		},
	}
}

func (s *Shell) cmdAdd(ctx context.Context, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("%w: expected 2 or 3, got %d", ErrUsage, len(args))
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if strings.TrimSpace(args[1]) == "" {
		return ErrEmptyName
	}
	if len(args) == 2 {
		return s.svc.Add(ctx, id, args[1])
	}
	managerID, err := parseID(args[2])
	if err != nil {
		return err
	}
	return s.svc.AddUnder(ctx, id, args[1], managerID)
}

func (s *Shell) cmdMove(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, 2)
	if err != nil {
		return err
	}
	return s.svc.Move(ctx, ids[0], ids[1])
}

func (s *Shell) cmdRemove(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, 1)
	if err != nil {
		return err
	}
	return s.svc.Remove(ctx, ids[0])
}

func (s *Shell) cmdCount(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, 1)
	if err != nil {
		return err
	}
	count, err := s.svc.CountReports(ctx, ids[0])
	if err != nil {
		return err
	}
	e, err := s.svc.Get(ids[0])
	if err != nil {
		return err
	}
	return s.out.FormatCount(e, count)
}

func (s *Shell) cmdPrint(ctx context.Context, args []string) error {
	if _, err := parseIDs(args, 0); err != nil {
		return err
	}
	return s.svc.Print(ctx, s.out.Writer())
}

func (s *Shell) cmdShow(_ context.Context, args []string) error {
	ids, err := parseIDs(args, 1)
	if err != nil {
		return err
	}
	e, err := s.svc.Get(ids[0])
	if err != nil {
		return err
	}
	return s.out.FormatEmployee(e)
}

func (s *Shell) cmdRoots(_ context.Context, args []string) error {
	if _, err := parseIDs(args, 0); err != nil {
		return err
	}
	return s.out.FormatEmployees(s.svc.Roots())
}

func (s *Shell) cmdMetrics(_ context.Context, args []string) error {
	if _, err := parseIDs(args, 0); err != nil {
		return err
	}
	return s.svc.WriteMetrics(s.out.Writer())
}

func (s *Shell) cmdHelp(_ context.Context, _ []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := s.commands[name]
		if err := s.out.FormatLine(fmt.Sprintf("  %-30s %s", cmd.usage, cmd.help)); err != nil {
			return err
		}
	}
	return s.out.FormatLine(fmt.Sprintf("  %-30s %s", "quit", "end the session (also exit)"))
}

// parseIDs checks that args holds exactly n employee ids and parses them.
func parseIDs(args []string, n int) ([]domainorg.ID, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrUsage, n, len(args))
	}
	ids := make([]domainorg.ID, n)
	for i, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func parseID(s string) (domainorg.ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return domainorg.ID(n), nil
}
