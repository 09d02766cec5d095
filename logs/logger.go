package logs

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/reusee/armplan/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var level = new(slog.LevelVar)

func init() {
	for name, l := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cmds.Define("-log-"+name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+name))
	}
}

type Logger = *slog.Logger

// Logger writes text records to Writer. Under a systemd service unit, records go to the journal instead.
func (Module) Logger(
	writer Writer,
) Logger {
	var handlers []slog.Handler
	var journalErr error

	if systemdUnit() != "" {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			ReplaceGroup: toJournalKey,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err == nil {
			handlers = append(handlers, journal)
		}
		journalErr = err
	}

	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level: level,
		}))
	}

	logger := slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
	if journalErr != nil {
		logger.Warn("systemd journal unavailable", "error", journalErr)
	}
	return logger
}

// toJournalKey maps a slog key to a journal field name: upper case letters, digits and underscores.
func toJournalKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(key) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// systemdUnit returns the service unit the process runs in, or empty.
func systemdUnit() string {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return ""
	}
	return unitFromCgroup(content)
}

func unitFromCgroup(content []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		// hierarchy-ID:controllers:path
		parts := strings.SplitN(scanner.Text(), ":", 3)
		if len(parts) != 3 {
			continue
		}
		unit := path.Base(strings.TrimSpace(parts[2]))
		if strings.HasSuffix(unit, ".service") && !strings.HasPrefix(unit, "user@") {
			return unit
		}
	}
	return ""
}
