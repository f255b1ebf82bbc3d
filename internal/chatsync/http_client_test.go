package chatsync

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
)

func TestHTTPClient(t *testing.T) {
	userID := uuid.New()
	conversationID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/public-login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Email o contraseña incorrectos","code":"INVALID_CREDENTIALS"}`))

			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]any{"id": userID}, "token": "tok"})
	})
	mux.HandleFunc("GET /api/conversations/{userId}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Sesión inválida o expirada","code":"UNAUTHORIZED"}`))

			return
		}
		_ = json.NewEncoder(w).Encode([]*entity.Conversation{{ID: conversationID, ClientID: userID, UnreadClient: 2}})
	})
	mux.HandleFunc("POST /api/messages", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entity.ChatMessage{ID: uuid.New(), ConversationID: conversationID, SenderID: userID, Content: body["content"]})
	})
	mux.HandleFunc("POST /api/conversations/{id}/read", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(entity.Conversation{ID: conversationID})
	})
	mux.HandleFunc("GET /api/messages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewHTTPClient(srv.URL + "/")

	t.Run("unauthenticated calls fail with the server's code", func(t *testing.T) {
		_, err := client.ListConversations(t.Context(), userID)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := client.Login(t.Context(), entity.RolePublic, "ana@example.com", "nope")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	})

	t.Run("login then poll", func(t *testing.T) {
		session, err := client.Login(t.Context(), entity.RolePublic, "ana@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, Viewer{UserID: userID, Role: entity.RolePublic}, session.Viewer)

		conversations, err := client.ListConversations(t.Context(), userID)
		require.NoError(t, err)
		require.Len(t, conversations, 1)
		assert.Equal(t, 2, session.Viewer.UnreadTotal(conversations))

		message, err := client.SendMessage(t.Context(), conversationID, "hola")
		require.NoError(t, err)
		assert.Equal(t, "hola", message.Content)

		conversation, err := client.MarkRead(t.Context(), conversationID)
		require.NoError(t, err)
		assert.Equal(t, conversationID, conversation.ID)
	})

	t.Run("error without body", func(t *testing.T) {
		_, err := client.ListMessages(t.Context(), conversationID)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
	})
}
