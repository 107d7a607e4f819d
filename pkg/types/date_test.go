package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAcceptsCalendarAndTimestamp(t *testing.T) {
	var body struct {
		Start *Date `json:"start"`
		End   *Date `json:"end"`
		Next  *Date `json:"next"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2026-04-01","end":"2027-03-31T18:30:00+05:30","next":null}`), &body))

	require.NotNil(t, body.Start)
	assert.True(t, body.Start.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, body.End.Equal(time.Date(2027, 3, 31, 13, 0, 0, 0, time.UTC)))
	assert.Nil(t, body.Next.TimePtr())
}

func TestDateRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"31/03/2027"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20270331`), &d))
}
