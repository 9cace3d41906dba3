package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// S3Downloader скачивает объект из настроенного бакета по ключу
type S3Downloader interface {
	DownloadFile(ctx context.Context, key string) ([]byte, error)
}

// Fetcher загружает документ каталога из настроенного источника.
// Поддерживаются http(s)-адреса, s3://bucket/key и локальные файлы.
type Fetcher struct {
	client *http.Client
	s3     S3Downloader
}

// NewFetcher создает новый загрузчик каталога.
// s3 может быть nil, если S3-источники не настроены.
func NewFetcher(s3 S3Downloader) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		s3: s3,
	}
}

// Fetch возвращает содержимое документа каталога.
// Ошибка означает состояние "каталог недоступен"; повторных попыток нет,
// это ответственность вызывающей стороны.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return f.fetchHTTP(ctx, source)
	case strings.HasPrefix(source, "s3://"):
		return f.fetchS3(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла каталога: %w", err)
		}
		return data, nil
	}
}

// Load загружает, разбирает и нормализует каталог из источника.
// Возвращает каталог и количество пропущенных записей.
func (f *Fetcher) Load(ctx context.Context, source string) (*Catalog, int, error) {
	data, err := f.Fetch(ctx, source)
	if err != nil {
		return nil, 0, err
	}

	raw, err := ParseDocument(data)
	if err != nil {
		return nil, 0, err
	}

	cat, skipped := Normalize(raw)
	return cat, skipped, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("User-Agent", "go-tunebox/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка при загрузке каталога: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP ошибка: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}
	return data, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, source string) ([]byte, error) {
	if f.s3 == nil {
		return nil, fmt.Errorf("источник %q требует настроенного S3 (блок aws_* в конфигурации)", source)
	}

	// Формат источника: s3://bucket/key; клиент привязан к бакету из
	// конфигурации, поэтому нам нужна только часть после имени бакета
	trimmed := strings.TrimPrefix(source, "s3://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[1] == "" {
		return nil, fmt.Errorf("неверный формат S3-источника: %s", source)
	}

	return f.s3.DownloadFile(ctx, parts[1])
}
