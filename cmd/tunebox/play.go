package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunebox/internal/player"
	"github.com/hazadus/go-tunebox/internal/queue"
	"github.com/hazadus/go-tunebox/internal/utils"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	var shuffle bool
	var repeat bool

	cmd := &cobra.Command{
		Use:   "play [track number]",
		Short: "Play the catalog starting from a track",
		Long:  `Play the catalog starting from the given track number. The queue keeps advancing until interrupted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			index := 0
			if len(args) > 0 {
				var err error
				if index, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("неверный номер трека: %s", args[0])
				}
			}
			return app.playQueue(ctx, index, shuffle, repeat)
		},
	}

	cmd.Flags().BoolVarP(&shuffle, "shuffle", "s", false, "начать с включенным перемешиванием")
	cmd.Flags().BoolVarP(&repeat, "repeat", "r", false, "начать с включенным повтором трека")
	return cmd
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

// readSingleChar читает одиночный символ без ожидания Enter
func readSingleChar() (byte, error) {
	buffer := make([]byte, 1)
	_, err := os.Stdin.Read(buffer)
	return buffer[0], err
}

func (app *Application) playQueue(ctx context.Context, index int, shuffle, repeat bool) error {
	if app.Catalog.IsEmpty() {
		return fmt.Errorf("каталог пуст, воспроизводить нечего")
	}
	if index < 0 || index >= app.Catalog.Len() {
		return fmt.Errorf("трек с номером %d не найден", index)
	}

	engine := app.Engine
	if shuffle {
		engine.ToggleShuffle()
	}
	if repeat {
		engine.ToggleRepeat()
	}

	// Выводим информацию о запускаемом треке при каждой смене
	engine.OnTrackChange = func(i int) {
		app.Visualizer.Reset()
		track := app.Catalog.Track(i)
		if track == nil {
			return
		}
		fmt.Printf("\r\033[K🎵 Сейчас играет: %s — %s", track.Artist, track.Title)
		if track.Album != "" {
			fmt.Printf(" (%s)", track.Album)
		}
		fmt.Println()
	}

	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [n] - следующий трек, [b] - предыдущий\n")
	fmt.Printf("   [s] - перемешивание, [r] - повтор трека\n")
	fmt.Printf("   [Ctrl+C] - остановить и выйти\n")
	fmt.Println()

	engine.PlayIndex(index, true)

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	// Создаем канал для обработки сигналов прерывания
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	// Клавиши читаем в горутине и передаем в главный цикл
	keys := make(chan byte)
	go func() {
		for {
			char, err := readSingleChar()
			if err != nil {
				continue
			}
			keys <- char
		}
	}()

	// Главный цикл обработки событий
	for {
		select {
		case char := <-keys:
			app.handlePlaybackKey(char)

		case status := <-app.Player.Progress():
			displayProgress(status)

		case <-app.Player.Done():
			// Движок решает: повторить трек или продвинуть очередь
			engine.OnTrackEnded()

		case <-interrupt:
			fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
			app.Player.Stop()
			return nil

		case <-ctx.Done():
			fmt.Println("\n🚫 Операция отменена")
			app.Player.Stop()
			return ctx.Err()
		}
	}
}

// handlePlaybackKey обрабатывает клавиши управления очередью
func (app *Application) handlePlaybackKey(char byte) {
	switch char {
	case ' ', '\n', '\r':
		// Пауза/воспроизведение
		fmt.Printf("\r\033[K")
		if app.Engine.IsPlaying() {
			app.Player.Pause()
			app.Engine.SetPlaying(false)
			fmt.Printf("⏸️  Пауза\n")
		} else if err := app.Player.Play(); err == nil {
			app.Engine.SetPlaying(true)
			fmt.Printf("▶️  Воспроизведение\n")
		}

	case 'n':
		app.Engine.Advance(+1)

	case 'b':
		app.Engine.Advance(-1)

	case 's':
		app.Engine.ToggleShuffle()
		fmt.Printf("\r\033[K🔀 Перемешивание: %s\n", onOff(app.Engine.ShuffleEnabled()))

	case 'r':
		app.Engine.ToggleRepeat()
		fmt.Printf("\r\033[K🔁 Повтор трека: %s\n", onOff(app.Engine.Repeat() == queue.RepeatOne))
	}
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(status player.Status) {
	// Определяем процент завершения
	var progress string
	if status.Total > 0 {
		percent := float64(status.Current) / float64(status.Total) * 100
		progress = fmt.Sprintf("%.1f%%", percent)
	} else {
		progress = "??%"
	}

	statusIcon := "⏱️"
	if !status.IsPlaying {
		statusIcon = "⏸️"
	}

	if status.Total > 0 {
		fmt.Printf("\r%s  %s | %s / %s",
			statusIcon,
			progress,
			utils.FormatDuration(status.Current),
			utils.FormatDuration(status.Total))
	} else {
		fmt.Printf("\r%s  %s | Потоковое воспроизведение",
			statusIcon,
			utils.FormatDuration(status.Current))
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "включено"
	}
	return "выключено"
}
