package handlers

import (
  "encoding/json"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/eduxhq/edux-backend/internal/apierr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func statusForKind(kind apierr.Kind) int {
  switch kind {
  case apierr.KindAuth:
    return http.StatusUnauthorized
  case apierr.KindPermission:
    return http.StatusForbidden
  case apierr.KindNotFound:
    return http.StatusNotFound
  case apierr.KindValidation:
    return http.StatusBadRequest
  }
  return http.StatusInternalServerError
}

// RespondError maps a tagged error onto an HTTP status and the user-facing
// message. The raw error text never reaches the client.
func RespondError(c *gin.Context, err error) {
  kind := apierr.KindOf(err)
  c.JSON(statusForKind(kind), ErrorEnvelope{
    Error: APIError{
      Message: apierr.UserMessage(err),
      Code:    string(kind),
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// Tool-call envelope. Tool endpoints always answer 200; success or failure
// is carried inside the body so callers can relay it verbatim.
type ToolContent struct {
  Type string `json:"type"`
  Text string `json:"text"`
}

type ToolResult struct {
  Content []ToolContent `json:"content"`
  IsError bool          `json:"isError,omitempty"`
}

func RespondToolJSON(c *gin.Context, payload any) {
  raw, err := json.Marshal(payload)
  if err != nil {
    RespondToolError(c, apierr.Internal(apierr.MsgInternal, err))
    return
  }
  c.JSON(http.StatusOK, ToolResult{
    Content: []ToolContent{{Type: "text", Text: string(raw)}},
  })
}

func RespondToolError(c *gin.Context, err error) {
  c.JSON(http.StatusOK, ToolResult{
    Content: []ToolContent{{Type: "text", Text: apierr.UserMessage(err)}},
    IsError: true,
  })
}
