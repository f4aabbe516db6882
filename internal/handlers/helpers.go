package handlers

import (
  "encoding/json"
  "time"
)

func mustJSON(v interface{}) []byte {
  raw, err := json.Marshal(v)
  if err != nil {
    return nil
  }
  return raw
}

func parseRFC3339(value string) (time.Time, error) {
  return time.Parse(time.RFC3339, value)
}
