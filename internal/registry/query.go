// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/dialectic-engine/pkg/types"
)

// QueryOptions holds filters for registry listings (R3.1-R3.3).
type QueryOptions struct {
	// Protocol filters by protocol id.
	Protocol string

	// Subject filters by subject name.
	Subject string

	// Role filters by universal verdict role.
	Role types.VerdictRole

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Protocol == "" && q.Subject == "" && q.Role == ""
}

// Row is a registry listing entry: the outcome's identity without the full
// record payload.
type Row struct {
	RunID       string            `json:"run_id" yaml:"run_id"`
	Protocol    string            `json:"protocol" yaml:"protocol"`
	Subject     string            `json:"subject" yaml:"subject"`
	Verdict     types.Verdict     `json:"verdict" yaml:"verdict"`
	Role        types.VerdictRole `json:"role" yaml:"role"`
	FinalizedAt time.Time         `json:"finalized_at" yaml:"finalized_at"`
}

// List returns registry rows matching the filters, newest first (R3.4).
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Row, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT run_id, protocol, subject, verdict, role, finalized_at
		 FROM outcomes WHERE 1=1`)

	if opts.Protocol != "" {
		qb.WriteString(` AND protocol = ?`)
		args = append(args, opts.Protocol)
	}
	if opts.Subject != "" {
		qb.WriteString(` AND subject = ?`)
		args = append(args, opts.Subject)
	}
	if opts.Role != "" {
		qb.WriteString(` AND role = ?`)
		args = append(args, string(opts.Role))
	}
	qb.WriteString(` ORDER BY seq DESC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying registry: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r         Row
			verdict   string
			role      string
			finalized string
		)
		if err := rows.Scan(&r.RunID, &r.Protocol, &r.Subject, &verdict, &role, &finalized); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Verdict = types.Verdict(verdict)
		r.Role = types.VerdictRole(role)
		if t, err := time.Parse(time.RFC3339Nano, finalized); err == nil {
			r.FinalizedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// History returns every outcome recorded for a subject in supersession
// order, oldest first. Superseded outcomes remain retrievable forever
// (R2.3, R4.1).
func (s *Store) History(ctx context.Context, subject string) ([]*types.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM outcomes WHERE subject = ? ORDER BY seq ASC`, subject)
	if err != nil {
		return nil, fmt.Errorf("querying history for %q: %w", subject, err)
	}
	defer rows.Close()

	var out []*types.Outcome
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		o, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
