package sheet

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"imobhub/internal/model"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Rows scanned when looking for a free row. Row 1 holds headers.
const freeRowWindow = 1000

type SheetService struct {
	Base64Creds   string
	SpreadsheetID string
	SheetID       string
	SheetName     string
	PauseMs       int // pause between requests in milliseconds
	srv           *sheets.Service
	limiterMu     sync.Mutex
	lastCall      time.Time
	colMap        ColumnMap
}

type ColumnMap map[string]int // e.g.: "N": 0, "Name": 1, ...

// NewDefaultColumnMap returns the fixed default column order.
func NewDefaultColumnMap() ColumnMap {
	return ColumnMap{
		"N":         0,
		"Name":      1,
		"Phone":     2,
		"Email":     3,
		"Source":    4,
		"Status":    5,
		"CreatedAt": 6,
	}
}

// CreateColumnMapFromOrder builds a ColumnMap from an order string
// (e.g.: "N,Name,Phone,Email,Source,Status,CreatedAt").
func CreateColumnMapFromOrder(order string) ColumnMap {
	if order == "" {
		return NewDefaultColumnMap()
	}
	fields := strings.Split(order, ",")
	m := make(ColumnMap)
	for idx, field := range fields {
		m[strings.TrimSpace(field)] = idx
	}
	return m
}

// NewSheetService builds a Sheets client from base64 service-account
// credentials and resolves the sheet name from its id.
func NewSheetService(base64Creds, spreadsheetID, sheetID string, pauseMs int, colMap ColumnMap) (*SheetService, error) {
	ctx := context.Background()
	credBytes, err := base64.StdEncoding.DecodeString(base64Creds)
	if err != nil {
		return nil, fmt.Errorf("cannot decode credentials from base64: %v", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, credBytes, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("cannot create credentials from JSON: %v", err)
	}
	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("cannot initialize the Google Sheets service: %v", err)
	}

	s := &SheetService{
		Base64Creds:   base64Creds,
		SpreadsheetID: spreadsheetID,
		SheetID:       sheetID,
		PauseMs:       pauseMs,
		srv:           srv,
		lastCall:      time.Now(),
		colMap:        colMap,
	}

	if err := s.fetchSheetName(); err != nil {
		return nil, fmt.Errorf("cannot resolve sheet name: %v", err)
	}

	return s, nil
}

func (s *SheetService) fetchSheetName() error {
	s.Wait() // limiter

	resp, err := s.srv.Spreadsheets.Get(s.SpreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("error fetching spreadsheet info: %v", err)
	}

	for _, sh := range resp.Sheets {
		if fmt.Sprint(sh.Properties.SheetId) == s.SheetID {
			s.SheetName = sh.Properties.Title
			return nil
		}
	}

	return fmt.Errorf("sheet with id %s not found", s.SheetID)
}

// Wait enforces the configured pause between API calls.
func (s *SheetService) Wait() {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	elapsed := time.Since(s.lastCall)
	pause := time.Duration(s.PauseMs) * time.Millisecond
	if elapsed < pause {
		time.Sleep(pause - elapsed)
	}
	s.lastCall = time.Now()
}

// InsertLead writes a lead row at the given row number.
func (s *SheetService) InsertLead(row int, lead model.Lead) error {
	s.Wait() // limiter

	values := make([]interface{}, len(s.colMap))
	for field, idx := range s.colMap {
		switch field {
		case "N":
			values[idx] = lead.ID
		case "Name":
			values[idx] = lead.Name
		case "Phone":
			values[idx] = lead.Phone
		case "Email":
			values[idx] = lead.Email
		case "Source":
			values[idx] = lead.Source
		case "Status":
			values[idx] = lead.Status
		case "CreatedAt":
			values[idx] = lead.CreatedAt.Format("02.01.2006 15:04")
		}
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{values},
	}

	rangeStr := fmt.Sprintf("%s!A%d", s.SheetName, row)
	_, err := s.srv.Spreadsheets.Values.Update(s.SpreadsheetID, rangeStr, vr).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("error writing lead row: %w", err)
	}
	return nil
}

// FindFirstFreeRow scans column A and returns the first row whose cells
// are all empty, ignoring whitespace.
func (s *SheetService) FindFirstFreeRow() (int, error) {
	s.Wait() // limiter

	colCount := len(s.colMap)
	lastCol := rune('A' + colCount - 1)
	rangeStr := fmt.Sprintf("%s!A1:%c%d", s.SheetName, lastCol, freeRowWindow)
	resp, err := s.srv.Spreadsheets.Values.Get(s.SpreadsheetID, rangeStr).Do()
	if err != nil {
		return 0, fmt.Errorf("error reading rows: %w", err)
	}

	for i := 0; i < freeRowWindow; i++ {
		if i >= len(resp.Values) {
			// row is completely empty
			return i + 1, nil
		}
		row := resp.Values[i]
		empty := true
		for j := 0; j < colCount; j++ {
			val := ""
			if j < len(row) {
				val = fmt.Sprintf("%v", row[j])
			}
			if strings.TrimSpace(val) != "" {
				empty = false
				break
			}
		}
		if empty {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("no free rows in the first %d rows", freeRowWindow)
}
