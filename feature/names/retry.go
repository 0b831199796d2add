package names

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// RetryResult counts the outcomes of ResolveAll.
type RetryResult struct {
	Resolved   int
	Unresolved int
}

// ParseItemIDs reads one item id per line. Blank lines are skipped and lines that are
// not integers are logged and skipped.
func ParseItemIDs(r io.Reader, logger *zap.Logger) ([]int64, error) {
	var ids []int64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			logger.Warn("Skipping invalid item id", zap.Int("line", line), zap.String("value", text))
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read item ids: %w", err)
	}
	return ids, nil
}

// ResolveAll resolves every id in order. Unresolved names are counted and logged;
// a store failure stops the run.
func (r *Resolver) ResolveAll(ctx context.Context, ids []int64) (RetryResult, error) {
	var res RetryResult
	for _, id := range ids {
		name, err := r.Resolve(ctx, id)
		if errors.Is(err, ErrUnresolved) {
			res.Unresolved++
			r.logger.Warn("Item name still unresolved", zap.Int64("item_id", id), zap.Error(err))
			continue
		}
		if err != nil {
			return res, err
		}
		res.Resolved++
		r.logger.Debug("Item name stored", zap.Int64("item_id", id), zap.String("item_name", name))
	}
	return res, nil
}
