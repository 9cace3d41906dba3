package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockS3 мок для S3-источника каталога
type mockS3 struct {
	data map[string][]byte
}

func (m *mockS3) DownloadFile(_ context.Context, key string) ([]byte, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("объект %q не найден", key)
	}
	return data, nil
}

func TestFetchHTTP(t *testing.T) {
	// Поднимаем тестовый сервер с документом каталога
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"tracks": [{"title": "A", "url": "http://x/a.mp3"}]}`)
	}))
	defer server.Close()

	fetcher := NewFetcher(nil)

	cat, skipped, err := fetcher.Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Ошибка загрузки каталога: %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("Ожидался каталог из 1 трека, получено %d", cat.Len())
	}
	if skipped != 0 {
		t.Errorf("Ожидалось 0 пропусков, получено %d", skipped)
	}
}

func TestFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(nil)

	_, _, err := fetcher.Load(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Ожидалась ошибка при HTTP 500")
	}
	if !strings.Contains(err.Error(), "HTTP") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestFetchLocalFile(t *testing.T) {
	// Каталог может лежать в локальном файле
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[{"title": "A", "url": "http://x/a.mp3"}, {"title": "B"}]`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Ошибка записи файла каталога: %v", err)
	}

	fetcher := NewFetcher(nil)

	cat, skipped, err := fetcher.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Ошибка загрузки каталога: %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("Ожидался каталог из 1 трека, получено %d", cat.Len())
	}
	if skipped != 1 {
		t.Errorf("Ожидался 1 пропуск, получено %d", skipped)
	}
}

func TestFetchLocalFileMissing(t *testing.T) {
	fetcher := NewFetcher(nil)

	_, _, err := fetcher.Load(context.Background(), "/non/existent/catalog.json")
	if err == nil {
		t.Fatal("Ожидалась ошибка для несуществующего файла")
	}
}

func TestFetchS3(t *testing.T) {
	s3 := &mockS3{data: map[string][]byte{
		"catalogs/main.json": []byte(`{"tracks": [{"title": "A", "url": "http://x/a.mp3"}]}`),
	}}

	fetcher := NewFetcher(s3)

	cat, _, err := fetcher.Load(context.Background(), "s3://music/catalogs/main.json")
	if err != nil {
		t.Fatalf("Ошибка загрузки каталога из S3: %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("Ожидался каталог из 1 трека, получено %d", cat.Len())
	}
}

func TestFetchS3NotConfigured(t *testing.T) {
	fetcher := NewFetcher(nil)

	_, _, err := fetcher.Load(context.Background(), "s3://music/catalog.json")
	if err == nil {
		t.Fatal("Ожидалась ошибка при ненастроенном S3")
	}
}

func TestFetchS3BadSource(t *testing.T) {
	fetcher := NewFetcher(&mockS3{})

	_, _, err := fetcher.Load(context.Background(), "s3://only-bucket")
	if err == nil {
		t.Fatal("Ожидалась ошибка для источника без ключа")
	}
}
