package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"deployment-analyzer/internal/model"
	"deployment-analyzer/pkg/utils"
)

// ------------------- Ingestion -------------------

// Ingest reads all sources and accumulates them into one raw batch. Rows
// from later sources are appended after earlier ones; duplicate removal
// happens in the cleaner, after batches are merged.
func Ingest(ctx context.Context, sources []model.Source) (model.RawBatch, error) {
	var batch model.RawBatch

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return model.RawBatch{}, err
		}

		fmt.Printf("➡️ Starting ingestion for source: %s (%s)\n", src.Path, src.Type)

		var (
			part model.RawBatch
			err  error
		)
		switch strings.ToLower(src.Type) {
		case "csv", "":
			part, err = ingestCSV(src)
		case "json", "api":
			part, err = ingestJSON(src)
		default:
			err = fmt.Errorf("unknown source type: %s", src.Type)
		}
		if err != nil {
			return model.RawBatch{}, fmt.Errorf("ingesting %s: %w", src.Path, err)
		}

		fmt.Printf("✅ Finished ingestion for source: %s (%d records)\n", src.Path, len(part.Records))
		batch.Merge(part)
	}

	return batch, nil
}

func readSource(pathOrURL string) ([]byte, error) {
	if strings.HasPrefix(pathOrURL, "http") {
		resp, err := http.Get(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to GET source: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return data, nil
}

// ------------------- CSV Ingestion -------------------

// sniffDelimiter guesses the field separator from the header line. German
// exports use semicolons, re-exports commas.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func ingestCSV(src model.Source) (model.RawBatch, error) {
	data, err := readSource(src.Path)
	if err != nil {
		return model.RawBatch{}, err
	}

	delimiter := sniffDelimiter(data)
	if src.Delimiter != "" {
		delimiter = rune(src.Delimiter[0])
	}

	csvReader := csv.NewReader(bytes.NewReader(data))
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return model.RawBatch{}, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range headers {
		// Clean header names: trim whitespace and remove ALL quotes
		h = strings.TrimSpace(h)
		h = strings.ReplaceAll(h, `"`, "")
		h = strings.TrimPrefix(h, "\ufeff")
		headers[i] = h
	}

	batch := model.RawBatch{Columns: headers}
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.RawBatch{}, fmt.Errorf("CSV read error: %w", err)
		}

		rec := model.RawRecord{SourceFile: src.Path}
		for i, h := range headers {
			if i >= len(row) {
				break
			}
			assignColumn(&rec, h, strings.TrimSpace(row[i]))
		}
		batch.Records = append(batch.Records, rec)
	}

	fmt.Printf("📄 CSV ingestion done: %d records read from %s\n", len(batch.Records), src.Path)
	return batch, nil
}

// assignColumn maps a header to its record field. Both the German workflow
// scheme and the generic re-export scheme are recognized, case-insensitively.
func assignColumn(rec *model.RawRecord, header, value string) {
	if value == "" {
		return
	}
	switch strings.ToLower(header) {
	case "iptc_de anweisung", "anweisung", "instruction":
		rec.Instruction = value
	case "iptc_en anweisung", "instruction_en":
		rec.InstructionEN = value
	case "bild upload zeitpunkt", "upload", "uploaded":
		rec.Uploaded = utils.ParseTimestamp(value)
	case "bild veröffentlicht", "veröffentlicht", "published":
		rec.Published = utils.ParseFlag(value)
	case "bild aktivierungszeitpunkt", "onlinestellung", "activation":
		rec.Activation = utils.ParseTimestamp(value)
	case "bildankunft", "arrival":
		rec.Arrival = utils.ParseTimestamp(value)
	}
}

// ------------------- JSON / API Ingestion -------------------

func ingestJSON(src model.Source) (model.RawBatch, error) {
	data, err := readSource(src.Path)
	if err != nil {
		return model.RawBatch{}, err
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		// single object payloads are allowed too
		var single map[string]json.RawMessage
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return model.RawBatch{}, fmt.Errorf("failed to decode JSON: %w", err)
		}
		rows = []map[string]json.RawMessage{single}
	}

	var batch model.RawBatch
	seen := map[string]bool{}
	for _, row := range rows {
		rec := model.RawRecord{SourceFile: src.Path}
		for key, raw := range row {
			if !seen[key] {
				seen[key] = true
				batch.Columns = append(batch.Columns, key)
			}
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				s = string(raw)
			}
			assignColumn(&rec, key, s)
		}
		batch.Records = append(batch.Records, rec)
	}

	fmt.Printf("🌐 JSON ingestion done: %d records read from %s\n", len(batch.Records), src.Path)
	return batch, nil
}
