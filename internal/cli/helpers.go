package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/salmancert/atomic/internal/daemon"
)

// apiURL builds a daemon endpoint URL from the on-disk configuration.
func apiURL(path string) (string, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%d%s", cfg.API.Host, cfg.API.Port, path), nil
}

// getJSON GETs a daemon endpoint and decodes the JSON response into out.
func getJSON(path string, out interface{}) error {
	url, err := apiURL(path)
	if err != nil {
		return err
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("is the daemon running? (atomic serve): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON POSTs a JSON body to a daemon endpoint and decodes the response.
func postJSON(path string, body interface{}, out interface{}) error {
	url, err := apiURL(path)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("is the daemon running? (atomic serve): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiError extracts the error message from a failed API response.
func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var wrapped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Error.Message != "" {
		return fmt.Errorf("%s", wrapped.Error.Message)
	}
	return fmt.Errorf("daemon returned %s", resp.Status)
}
