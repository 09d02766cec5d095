package editors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/reusee/armplan/logs"
)

// Edit runs the interactive editor on the terminal until the user quits.
type Edit func(ctx context.Context, session *Session, out io.Writer) error

func (Module) Edit(
	execute Execute,
	logger logs.Logger,
) Edit {

	getHistoryPath := sync.OnceValues(func() (string, error) {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "armplan", "edit-history"), nil
	})

	saveHistory := func(line *liner.State, historyPath string) {
		if historyPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
			logger.Warn("create history dir error", "err", err)
			return
		}
		f, err := os.Create(historyPath)
		if err != nil {
			logger.Warn("create history file error", "err", err)
			return
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			logger.Warn("write history error", "err", err)
		}
	}

	return func(ctx context.Context, session *Session, out io.Writer) error {
		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)

		historyPath, err := getHistoryPath()
		if err != nil {
			logger.Warn("get history path error", "err", err)
			historyPath = ""
		} else if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}

		fmt.Fprintln(out, "type a motion prompt, or /help")
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			input, err := line.Prompt(">> ")
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
					return nil
				}
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			line.AppendHistory(input)
			saveHistory(line, historyPath)

			quit, err := execute(ctx, session, out, input)
			if err != nil {
				fmt.Fprintln(out, errColor(err.Error()))
				continue
			}
			if quit {
				return nil
			}
		}
	}
}
