package xlsx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/oksasatya/sheet-auth/internal/domain/entity"
	"github.com/oksasatya/sheet-auth/internal/domain/repository"
)

// SheetName is the worksheet holding the user table.
const SheetName = "Users"

// CreatedAtLayout is ISO-8601 UTC with millisecond precision.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

const (
	colName         = "name"
	colEmail        = "email"
	colPasswordHash = "passwordHash"
	colCreatedAt    = "createdAt"
)

// Columns is the header row, in write order.
var Columns = []string{colName, colEmail, colPasswordHash, colCreatedAt}

// ErrCellTooLong is returned by SaveAll for a value excelize would truncate.
var ErrCellTooLong = fmt.Errorf("cell value exceeds %d characters", excelize.TotalCellChars)

// UserStore keeps the user table in a single-sheet workbook on disk.
// Every read opens the whole file; every write replaces it.
type UserStore struct {
	path string
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Path returns the workbook location.
func (s *UserStore) Path() string { return s.path }

// EnsureStorageExists creates an empty workbook (header only) when the file is missing.
func (s *UserStore) EnsureStorageExists() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat workbook: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create workbook dir: %w", err)
		}
	}
	return s.SaveAll(nil)
}

func (s *UserStore) LoadAll() ([]entity.User, error) {
	if err := s.EnsureStorageExists(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	idx, err := f.GetSheetIndex(SheetName)
	if err != nil {
		return nil, fmt.Errorf("lookup sheet %q: %w", SheetName, err)
	}
	if idx < 0 {
		return []entity.User{}, nil
	}
	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", SheetName, err)
	}
	return decodeRows(rows)
}

// SaveAll writes users as the complete content of the sheet. The workbook is
// written next to the target and renamed over it.
func (s *UserStore) SaveAll(users []entity.User) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := writeRow(f, 1, header); err != nil {
		return err
	}
	for i, u := range users {
		for _, v := range []string{u.Name, u.Email, u.PasswordHash} {
			if utf8.RuneCountInString(v) > excelize.TotalCellChars {
				return fmt.Errorf("row %d: %w", i+2, ErrCellTooLong)
			}
		}
		row := []interface{}{u.Name, u.Email, u.PasswordHash, formatCreatedAt(u.CreatedAt)}
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}
	return s.replace(f)
}

func (s *UserStore) replace(f *excelize.File) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func decodeRows(rows [][]string) ([]entity.User, error) {
	users := []entity.User{}
	if len(rows) == 0 {
		return users, nil
	}
	pos := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	get := func(row []string, col string) string {
		i, ok := pos[strings.ToLower(col)]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		u := entity.User{
			Name:         get(row, colName),
			Email:        get(row, colEmail),
			PasswordHash: get(row, colPasswordHash),
		}
		if raw := strings.TrimSpace(get(row, colCreatedAt)); raw != "" {
			t, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid %s %q: %w", n+2, colCreatedAt, raw, err)
			}
			u.CreatedAt = t
		}
		users = append(users, u)
	}
	return users, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(CreatedAtLayout)
}

var _ repository.UserStore = (*UserStore)(nil)
