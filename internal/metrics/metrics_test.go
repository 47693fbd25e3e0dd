package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RegistersContactsStored(t *testing.T) {
	Init()
	ContactsStored.Set(3)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, f := range families {
		if m := f.GetMetric(); len(m) == 1 && m[0].GetGauge() != nil {
			byName[f.GetName()] = m[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, 3.0, byName["contacts_stored"])
	assert.NotContains(t, byName, "contacts_listed")
}
