package tourists

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/SafeTrails/ST-Backend/internal/docid"
	"github.com/SafeTrails/ST-Backend/internal/store"
)

// scanLimit bounds the final normalized scan. Beyond this many tourists
// the scan is knowingly incomplete; a warning is logged when the cap
// fills so the limit shows up in operations before it bites.
const scanLimit = 500

var (
	// ErrEmptyDocumentNo rejects a blank lookup query.
	ErrEmptyDocumentNo = errors.New("documentNo is required")
	// ErrNoMatch means every applicable tier ran clean and found nothing.
	ErrNoMatch = errors.New("no tourist found for this passport")
)

// errNoRows distinguishes "tier ran clean but matched nothing" from a
// store failure; only failures advance to the next tier.
var errNoRows = errors.New("no rows")

// Resolver finds a tourist by document number, tolerating punctuation
// and case differences between the query and the stored value. Tiers:
// case-insensitive match, case-sensitive equality, then a bounded scan
// comparing normalized document numbers.
type Resolver struct {
	Records store.RecordStore
}

type lookupStrategy struct {
	name string
	run  func(ctx context.Context, documentNo string, columns []string) (store.Row, error)
}

func (res *Resolver) strategies() []lookupStrategy {
	return []lookupStrategy{
		{name: "ilike", run: res.byPattern},
		{name: "exact", run: res.byEquality},
		{name: "scan", run: res.byNormalizedScan},
	}
}

// Resolve returns the single record whose document number matches
// documentNo, projected to columns. A tier that runs clean and finds
// nothing ends the lookup with ErrNoMatch; only store errors advance
// to the next tier.
func (res *Resolver) Resolve(ctx context.Context, documentNo string, columns []string) (store.Row, error) {
	documentNo = strings.TrimSpace(documentNo)
	if documentNo == "" {
		return nil, ErrEmptyDocumentNo
	}

	var lastErr error
	for _, s := range res.strategies() {
		row, err := s.run(ctx, documentNo, columns)
		switch {
		case err == nil:
			return row, nil
		case errors.Is(err, errNoRows):
			return nil, ErrNoMatch
		default:
			log.Printf("[tourists] %s lookup failed, trying next tier: %v", s.name, err)
			lastErr = err
		}
	}
	return nil, fmt.Errorf("passport lookup failed: %w", lastErr)
}

func (res *Resolver) byPattern(ctx context.Context, documentNo string, columns []string) (store.Row, error) {
	rows, err := res.Records.Select(ctx, store.Query{
		Table:   touristTable,
		Columns: columns,
		Pattern: &store.Pattern{Column: "documentno", Value: documentNo},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errNoRows
	}
	return rows[0], nil
}

func (res *Resolver) byEquality(ctx context.Context, documentNo string, columns []string) (store.Row, error) {
	rows, err := res.Records.Select(ctx, store.Query{
		Table:   touristTable,
		Columns: columns,
		Filter:  store.Filter{"documentno": documentNo},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errNoRows
	}
	return rows[0], nil
}

func (res *Resolver) byNormalizedScan(ctx context.Context, documentNo string, columns []string) (store.Row, error) {
	rows, err := res.Records.Select(ctx, store.Query{
		Table:   touristTable,
		Columns: columns,
		Limit:   scanLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == scanLimit {
		log.Printf("[tourists] normalized scan hit the %d row cap; lookup may be incomplete", scanLimit)
	}

	target := docid.Normalize(documentNo)
	// Ties resolve to the first row encountered. Insert order under
	// concurrent writes makes this nondeterministic.
	for _, row := range rows {
		if docid.Normalize(row.String("documentno")) == target {
			return row, nil
		}
	}
	return nil, errNoRows
}
