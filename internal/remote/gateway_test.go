package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil)
}

func TestPullSnapshot_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{
			"result": "success",
			"data": {
				"users": [],
				"inventory": [{"id":"itm-1","owner":"Acme","itemName":"Widget","quantity":3,"avgCost":1.5}],
				"banner_h": "Welcome",
				"banner_v": ""
			}
		}`)
	})

	snap, err := client.PullSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Tables["inventory"], 1)
	require.Empty(t, snap.Tables["users"])
	require.Equal(t, "Welcome", snap.Values["banner_h"])
	require.Equal(t, "", snap.Values["banner_v"])
}

func TestPullSnapshot_RemoteReportsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"result":"error","error":"sheet locked"}`)
	})

	_, err := client.PullSnapshot(context.Background())
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, "sheet locked", remoteErr.Message)
}

func TestPullSnapshot_MalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":       `<html>oops</html>`,
		"bad result":     `{"result":"maybe","data":{}}`,
		"missing data":   `{"result":"success"}`,
		"data not a map": `{"result":"success","data":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			})

			_, err := client.PullSnapshot(context.Background())
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestPullSnapshot_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := NewClient(endpoint, time.Second, nil)
	_, err := client.PullSnapshot(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestPullSnapshot_NotConfigured(t *testing.T) {
	client := NewClient("", time.Second, nil)
	_, err := client.PullSnapshot(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestPushRecord_SendsSaveRecordAction(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	record := map[string]string{"id": "sal-1", "owner": "Acme"}
	require.NoError(t, client.PushRecord(context.Background(), "sales", record))
	require.Equal(t, "save_record", captured["action"])
	require.Equal(t, "sales", captured["key"])
}

func TestPushTable_SendsBulkSaveAction(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
	})

	require.NoError(t, client.PushTable(context.Background(), "expenses", []map[string]string{{"id": "exp-1"}}))
	require.Equal(t, "bulk_save", captured["action"])
}

func TestPush_NoOpWhenNotConfigured(t *testing.T) {
	client := NewClient("", time.Second, nil)
	require.NoError(t, client.PushRecord(context.Background(), "sales", map[string]string{"id": "sal-1"}))
	require.False(t, client.Configured())
}

func TestPush_BadStatusIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.PushRecord(context.Background(), "sales", map[string]string{"id": "sal-1"})
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnreachable))
}
