package requests

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/triage/internal/classifier"
	"github.com/JaimeStill/triage/pkg/repository"
)

func scanRequest(s repository.Scanner) (Request, error) {
	var (
		req            Request
		classification []byte
		extraction     []byte
		actionIDs      []byte
		actionResults  []byte
	)

	err := s.Scan(
		&req.ID,
		&req.InputKind,
		&req.RawContent,
		&req.StorageKey,
		&req.Status,
		&classification,
		&extraction,
		&actionIDs,
		&actionResults,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return req, err
	}

	if classification != nil {
		var c classifier.Classification
		if err := json.Unmarshal(classification, &c); err != nil {
			return req, fmt.Errorf("decode classification: %w", err)
		}
		req.Classification = &c
	}

	if extraction != nil {
		if err := json.Unmarshal(extraction, &req.Extraction); err != nil {
			return req, fmt.Errorf("decode extraction: %w", err)
		}
	}

	if actionIDs != nil {
		if err := json.Unmarshal(actionIDs, &req.Actions); err != nil {
			return req, fmt.Errorf("decode actions: %w", err)
		}
	}

	if actionResults != nil {
		if err := json.Unmarshal(actionResults, &req.ActionResults); err != nil {
			return req, fmt.Errorf("decode action results: %w", err)
		}
	}

	return req, nil
}

func scanSummary(s repository.Scanner) (Summary, error) {
	var sum Summary
	err := s.Scan(
		&sum.ID,
		&sum.InputKind,
		&sum.Status,
		&sum.CreatedAt,
	)
	return sum, err
}
