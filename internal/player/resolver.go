package player

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// Resolver превращает источник трека из каталога в адрес, пригодный для
// потокового воспроизведения. YouTube ссылки разрешаются в прямой URL
// аудио потока, остальные источники возвращаются как есть.
type Resolver struct {
	client youtube.Client
}

// NewResolver создает новый резолвер источников
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve возвращает потоковый адрес для источника трека
func (r *Resolver) Resolve(ctx context.Context, source string) (string, error) {
	if !isYouTubeURL(source) {
		return source, nil
	}

	videoID, err := extractVideoID(source)
	if err != nil {
		return "", fmt.Errorf("ошибка извлечения ID видео: %w", err)
	}

	video, err := r.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("ошибка получения информации о видео: %w", err)
	}

	audioFormat := findBestAudioFormat(video.Formats)
	if audioFormat == nil {
		return "", fmt.Errorf("аудио формат не найден для видео %s", videoID)
	}

	streamURL, err := r.client.GetStreamURLContext(ctx, video, audioFormat)
	if err != nil {
		return "", fmt.Errorf("ошибка получения потока: %w", err)
	}
	return streamURL, nil
}

// isYouTubeURL проверяет, указывает ли источник на YouTube
func isYouTubeURL(source string) bool {
	return strings.Contains(source, "youtube.com/") || strings.Contains(source, "youtu.be/")
}

// extractVideoID извлекает ID видео из различных форматов YouTube URL
func extractVideoID(url string) (string, error) {
	// Паттерны для различных форматов YouTube URL
	patterns := []string{
		`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`,
		`(?:youtube\.com/embed/)([a-zA-Z0-9_-]{11})`,
		`(?:youtube\.com/v/)([a-zA-Z0-9_-]{11})`,
	}

	for _, pattern := range patterns {
		re := regexp.MustCompile(pattern)
		matches := re.FindStringSubmatch(url)
		if len(matches) > 1 {
			return matches[1], nil
		}
	}

	return "", fmt.Errorf("не удалось извлечь ID видео из URL: %s", url)
}

// findBestAudioFormat находит лучший аудио формат для воспроизведения
func findBestAudioFormat(formats youtube.FormatList) *youtube.Format {
	// Сначала ищем форматы только с аудио
	audioFormats := formats.WithAudioChannels()

	if len(audioFormats) == 0 {
		// Если нет только аудио форматов, ищем видео+аудио форматы
		videoAudioFormats := formats.Type("video")
		for i := range videoAudioFormats {
			if videoAudioFormats[i].AudioChannels > 0 {
				return &videoAudioFormats[i]
			}
		}
		return nil
	}

	// Ищем форматы с лучшим качеством аудио
	bestFormat := &audioFormats[0]

	for i := range audioFormats {
		format := &audioFormats[i]

		// Предпочитаем форматы с более высоким битрейтом
		if format.Bitrate > bestFormat.Bitrate {
			bestFormat = format
		}

		// Предпочитаем MP4/M4A форматы для лучшей совместимости
		if strings.Contains(format.MimeType, "mp4") || strings.Contains(format.MimeType, "m4a") {
			if !strings.Contains(bestFormat.MimeType, "mp4") && !strings.Contains(bestFormat.MimeType, "m4a") {
				bestFormat = format
			}
		}
	}

	return bestFormat
}
