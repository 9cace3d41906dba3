package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-tunebox/internal/storage"
)

// createThemeCommand создает команду theme
func (app *Application) createThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the interface theme",
		Long:  `Show the current interface theme, or set it to "dark" or "light". The choice is persisted in the state directory.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Printf("🎨 Текущая тема: %s\n", app.loadTheme())
				return nil
			}
			if err := app.saveTheme(args[0]); err != nil {
				return err
			}
			fmt.Printf("✅ Тема %q сохранена\n", args[0])
			return nil
		},
	}
}

// loadTheme возвращает сохраненную тему либо тему из конфигурации
func (app *Application) loadTheme() string {
	data, err := app.Storage.Get(storage.ThemeKey)
	if err != nil || len(data) == 0 {
		return app.Config.Theme
	}

	theme := string(data)
	if theme != "dark" && theme != "light" {
		return app.Config.Theme
	}
	return theme
}

// saveTheme сохраняет выбранную тему в хранилище состояния
func (app *Application) saveTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("неизвестная тема %q, доступны: dark, light", theme)
	}
	if err := app.Storage.Set(storage.ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("ошибка сохранения темы: %w", err)
	}
	return nil
}
