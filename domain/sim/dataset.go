package sim

import (
	"fmt"

	"dredge/domain/core"
)

// Dataset is a column-oriented table of one trial's generated data.
// It is owned by the trial that generated it and is never mutated after
// construction; subsets and response transforms produce fresh datasets.
type Dataset struct {
	n       int
	order   []core.VariableKey
	columns map[core.VariableKey][]float64
}

// NewDataset creates an empty dataset expecting columns of length n.
func NewDataset(n int) *Dataset {
	return &Dataset{
		n:       n,
		columns: make(map[core.VariableKey][]float64),
	}
}

// AddColumn registers a named column. Columns must match the row count.
func (d *Dataset) AddColumn(key core.VariableKey, values []float64) error {
	if len(values) != d.n {
		return fmt.Errorf("column %s has %d rows, dataset expects %d", key, len(values), d.n)
	}
	if _, exists := d.columns[key]; exists {
		return fmt.Errorf("column %s already present", key)
	}
	d.order = append(d.order, key)
	d.columns[key] = values
	return nil
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int {
	return d.n
}

// Column returns the named column's data.
func (d *Dataset) Column(key core.VariableKey) ([]float64, bool) {
	values, ok := d.columns[key]
	return values, ok
}

// Keys returns column keys in insertion order.
func (d *Dataset) Keys() []core.VariableKey {
	keys := make([]core.VariableKey, len(d.order))
	copy(keys, d.order)
	return keys
}

// Covariates returns the nuisance covariate keys (everything that is not the
// response or the predictor), in insertion order.
func (d *Dataset) Covariates() []core.VariableKey {
	var keys []core.VariableKey
	for _, key := range d.order {
		if key != ColResponse && key != ColPredictor {
			keys = append(keys, key)
		}
	}
	return keys
}

// CovariateKey names the i-th (1-based) nuisance covariate column.
func CovariateKey(i int) core.VariableKey {
	return core.VariableKey(fmt.Sprintf("z%d", i))
}

// SelectRows returns a fresh dataset containing only the given row indices,
// every column included. The receiver is left untouched.
func (d *Dataset) SelectRows(indices []int) *Dataset {
	subset := NewDataset(len(indices))
	for _, key := range d.order {
		source := d.columns[key]
		values := make([]float64, len(indices))
		for i, row := range indices {
			values[i] = source[row]
		}
		subset.order = append(subset.order, key)
		subset.columns[key] = values
	}
	return subset
}

// WithResponse returns a fresh dataset identical to the receiver except that
// the response column is replaced by the given derived values. Used for the
// battery's response transformations.
func (d *Dataset) WithResponse(values []float64) (*Dataset, error) {
	if len(values) != d.n {
		return nil, fmt.Errorf("derived response has %d rows, dataset expects %d", len(values), d.n)
	}
	derived := NewDataset(d.n)
	for _, key := range d.order {
		if key == ColResponse {
			copied := make([]float64, d.n)
			copy(copied, values)
			derived.order = append(derived.order, key)
			derived.columns[key] = copied
			continue
		}
		derived.order = append(derived.order, key)
		derived.columns[key] = d.columns[key]
	}
	return derived, nil
}
