package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kpauljoseph/printcards/internal/render"
	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/models"
	"github.com/kpauljoseph/printcards/pkg/utils"
)

const (
	DefaultAnkiConnectURL = "http://localhost:8765"
	DefaultModelName      = "PrintCards"
	AppTag                = "printcards"
	MaxRetries            = 3
	RetryDelay            = 500 * time.Millisecond
)

var ErrAnkiUnavailable = errors.New("could not connect to Anki. Please ensure:\n" +
	"1. Anki is running https://apps.ankiweb.net/#download\n" +
	"2. AnkiConnect add-on is installed (code: 2055492159) https://ankiweb.net/shared/info/2055492159\n" +
	"3. Anki has been restarted after installing AnkiConnect")

type Service struct {
	ankiConnectURL string
	modelName      string
	client         *http.Client
	retryDelay     time.Duration
	logger         *logger.Logger
}

type Option func(*Service)

func WithURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.ankiConnectURL = url
		}
	}
}

func WithModel(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.modelName = name
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

func WithRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		s.retryDelay = d
	}
}

type AnkiConnectRequest struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params"`
}

type Note struct {
	DeckName  string                 `json:"deckName"`
	ModelName string                 `json:"modelName"`
	Fields    map[string]string      `json:"fields"`
	Options   map[string]interface{} `json:"options"`
	Tags      []string               `json:"tags"`
}

// Report summarises an export.
type Report struct {
	Added      int
	Duplicates int
	Failed     int
}

func NewService(logger *logger.Logger, options ...Option) *Service {
	s := &Service{
		ankiConnectURL: DefaultAnkiConnectURL,
		modelName:      DefaultModelName,
		client:         &http.Client{Timeout: 10 * time.Second},
		retryDelay:     RetryDelay,
		logger:         logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) CheckConnection(ctx context.Context) error {
	request := AnkiConnectRequest{
		Action:  "version",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]interface{}{},
	}

	if _, err := s.sendRequest(ctx, request); err != nil {
		s.logger.Info("Error sending request to Anki: %v", err)
		return ErrAnkiUnavailable
	}
	return nil
}

func (s *Service) CreateDeck(ctx context.Context, deckName string) error {
	s.logger.Info("Creating deck: %s", deckName)
	request := AnkiConnectRequest{
		Action:  "createDeck",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]string{
			"deck": deckName,
		},
	}

	_, err := s.sendRequest(ctx, request)
	return err
}

func (s *Service) ensureModelExists(ctx context.Context) error {
	request := AnkiConnectRequest{
		Action:  "modelNames",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]interface{}{},
	}

	result, err := s.sendRequest(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to get models: %w", err)
	}

	var modelNames []string
	if err := json.Unmarshal(result, &modelNames); err != nil {
		return fmt.Errorf("failed to parse model names: %w", err)
	}

	for _, name := range modelNames {
		if name == s.modelName {
			s.logger.Debug("%s model already exists", s.modelName)
			return nil
		}
	}

	createRequest := AnkiConnectRequest{
		Action:  "createModel",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"modelName":     s.modelName,
			"inOrderFields": []string{"Front", "Back", "Tag", "Hash"},
			"css": `.card {
                font-family: arial;
                font-size: 20px;
                text-align: center;
                color: black;
                background-color: white;
            }
            .tag { font-size: 12px; font-style: italic; text-align: right; }
            .hash { display: none; }`,
			"cardTemplates": []map[string]interface{}{
				{
					"Name": "Card 1",
					"Front": `{{Front}}
                        <div class="tag">{{Tag}}</div>
                        <div class="hash">{{Hash}}</div>`,
					"Back": `{{FrontSide}}
                        <hr id="answer">
                        {{Back}}`,
				},
			},
		},
	}

	if _, err := s.sendRequest(ctx, createRequest); err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	s.logger.Info("Created %s model", s.modelName)
	return nil
}

func (s *Service) findExistingNoteByHash(ctx context.Context, hash string) (int, error) {
	request := AnkiConnectRequest{
		Action:  "findNotes",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"query": fmt.Sprintf("Hash:%s", hash),
		},
	}

	result, err := s.sendRequest(ctx, request)
	if err != nil {
		return 0, fmt.Errorf("failed to search notes: %w", err)
	}

	var noteIds []int
	if err := json.Unmarshal(result, &noteIds); err != nil {
		return 0, fmt.Errorf("failed to parse note IDs: %w", err)
	}

	if len(noteIds) > 0 {
		return noteIds[0], nil
	}
	return 0, nil
}

// AddRecord adds one record as a note. It reports false when a note with
// the same content already exists.
func (s *Service) AddRecord(ctx context.Context, deckName string, record models.Record) (bool, error) {
	contentHash := utils.GenerateRecordHash(record.SideA, record.SideB)
	s.logger.Trace("Record hash: %s", contentHash)

	existingNoteId, err := s.findExistingNoteByHash(ctx, contentHash)
	if err != nil {
		s.logger.Debug("Warning: failed to check for existing note: %v", err)
	} else if existingNoteId != 0 {
		s.logger.Debug("Skipping duplicate card with hash: %s", contentHash)
		return false, nil
	}

	note := Note{
		DeckName:  deckName,
		ModelName: s.modelName,
		Fields: map[string]string{
			"Front": FieldHTML(record.SideA),
			"Back":  FieldHTML(record.SideB),
			"Tag":   html.EscapeString(record.Tag),
			"Hash":  contentHash,
		},
		Options: map[string]interface{}{
			"allowDuplicate": false,
		},
		Tags: NoteTags(record.Tag),
	}

	request := AnkiConnectRequest{
		Action:  "addNote",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"note": note,
		},
	}

	if _, err := s.sendRequest(ctx, request); err != nil {
		return false, fmt.Errorf("failed to add note: %w", err)
	}
	return true, nil
}

// AddAll exports every record into deckName, creating the deck and note
// model as needed. Individual failures are counted and reported together.
func (s *Service) AddAll(ctx context.Context, deckName string, records []models.Record) (Report, error) {
	var report Report

	if err := s.CreateDeck(ctx, deckName); err != nil {
		return report, fmt.Errorf("failed to create deck: %w", err)
	}
	if err := s.ensureModelExists(ctx); err != nil {
		return report, fmt.Errorf("failed to ensure model exists: %w", err)
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		added, err := s.AddRecord(ctx, deckName, record)
		switch {
		case err != nil:
			s.logger.Debug("Error adding card: %v", err)
			report.Failed++
		case added:
			report.Added++
		default:
			report.Duplicates++
		}
	}

	s.logger.Debug("Added %d cards, skipped %d duplicates", report.Added, report.Duplicates)
	if report.Failed > 0 {
		return report, fmt.Errorf("failed to add %d out of %d cards", report.Failed, len(records))
	}
	return report, nil
}

func (s *Service) sendRequest(ctx context.Context, req AnkiConnectRequest) (json.RawMessage, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Debug("Retrying %s (attempt %d/%d)...", req.Action, attempt+1, MaxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}

		result, err := s.post(ctx, reqBody)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, fmt.Errorf("after %d attempts: %w", MaxRetries, lastErr)
}

func (s *Service) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ankiConnectURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Error  *string         `json:"error"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("anki error: %s", *result.Error)
	}
	return result.Result, nil
}

// FieldHTML escapes card text for an Anki field, turning forced line breaks
// into <br>.
func FieldHTML(text string) string {
	text = strings.ReplaceAll(text, render.LineBreak, "\n")
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}
