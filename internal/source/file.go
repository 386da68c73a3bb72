package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"stocksense/internal/types"
)

// JSONFile reads a JSON array of items, or an object keyed by entity
// whose values are arrays (entity is then filled from the key).
type JSONFile struct {
	path string
}

func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) Name() string { return "json:" + f.path }

func (f *JSONFile) Items(ctx context.Context) ([]types.RawItem, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(b)
}

// DecodeJSON accepts either a flat array of items or a map of entity -> items
func DecodeJSON(b []byte) ([]types.RawItem, error) {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var items []types.RawItem
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return items, nil
	}

	var grouped map[string][]types.RawItem
	if err := json.Unmarshal(b, &grouped); err != nil {
		return nil, fmt.Errorf("decode grouped items: %w", err)
	}
	// map order is random; sort keys so output stays deterministic
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var items []types.RawItem
	for _, entity := range keys {
		for _, it := range grouped[entity] {
			if it.Entity == "" {
				it.Entity = entity
			}
			items = append(items, it)
		}
	}
	return items, nil
}

// csvRow mirrors the CSV header; votes stays a string so blank cells parse
type csvRow struct {
	Title   string `csv:"title"`
	Content string `csv:"content"`
	Entity  string `csv:"entity"`
	Date    string `csv:"date"`
	Source  string `csv:"source"`
	URL     string `csv:"url"`
	Votes   string `csv:"votes"`
}

// CSVFile reads items from a CSV file with a header row
type CSVFile struct {
	path string
}

func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

func (f *CSVFile) Name() string { return "csv:" + f.path }

func (f *CSVFile) Items(ctx context.Context) ([]types.RawItem, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []csvRow
	if err := gocsv.Unmarshal(file, &rows); err != nil {
		return nil, fmt.Errorf("decode csv %s: %w", f.path, err)
	}

	items := make([]types.RawItem, 0, len(rows))
	for i, r := range rows {
		votes := 0
		if v := strings.TrimSpace(r.Votes); v != "" {
			votes, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("csv %s row %d: votes: %w", f.path, i+1, err)
			}
		}
		items = append(items, types.RawItem{
			Title:   r.Title,
			Content: r.Content,
			Entity:  strings.TrimSpace(r.Entity),
			Date:    strings.TrimSpace(r.Date),
			Source:  r.Source,
			URL:     r.URL,
			Votes:   votes,
		})
	}
	return items, nil
}
