package types

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/slack-go/slack"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	drivestore "github.com/iamLiquidX/SearchX/drive"
	"github.com/iamLiquidX/SearchX/search"
	"github.com/iamLiquidX/SearchX/telegraph"
)

// Clients holds the external service clients.
// Clients are initialized once and shared across searches.
type Clients struct {
	drive     *drive.Service
	telegraph *telegraph.Client
	slack     *slack.Client
}

// RequiredScopes returns the scopes needed by the clients.
func RequiredScopes() []string {
	return []string{drive.DriveReadonlyScope}
}

// NewClients creates the Drive and Telegraph clients, plus a Slack client
// when SLACK_BOT_TOKEN is set.
func NewClients(ctx context.Context, cfg *Config) (*Clients, error) {
	driveService, err := newDriveService(ctx, cfg.Drive)
	if err != nil {
		return nil, err
	}

	tg, err := newTelegraph(ctx, cfg.Telegraph)
	if err != nil {
		return nil, err
	}

	c := &Clients{
		drive:     driveService,
		telegraph: tg,
	}
	if token := os.Getenv("SLACK_BOT_TOKEN"); token != "" {
		c.slack = slack.New(token)
	}
	return c, nil
}

func newDriveService(ctx context.Context, cfg DriveConfig) (*drive.Service, error) {
	scopes := RequiredScopes()

	if cfg.CredentialsFile != "" {
		ts, err := installedAppTokenSource(ctx, cfg, scopes)
		if err != nil {
			return nil, err
		}
		svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("failed to create drive service: %w", err)
		}
		return svc, nil
	}

	// Validate ADC credentials exist
	_, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("Google credentials not found or insufficient scopes.\n\n"+
			"Run the following command to authenticate:\n"+
			"  gcloud auth application-default login --scopes=\"%s\"\n\n"+
			"or set drive.credentials_file and drive.token_file in the config.",
			scopes[0])
	}

	svc, err := drive.NewService(ctx, option.WithScopes(scopes...))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

// installedAppTokenSource loads an OAuth client secret and a previously saved
// token. The token is refreshed automatically when it expires.
func installedAppTokenSource(ctx context.Context, cfg DriveConfig, scopes []string) (oauth2.TokenSource, error) {
	secret, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive credentials: %w", err)
	}
	conf, err := google.ConfigFromJSON(secret, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse drive credentials: %w", err)
	}

	data, err := os.ReadFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse drive token: %w", err)
	}
	return conf.TokenSource(ctx, &tok), nil
}

func newTelegraph(ctx context.Context, cfg TelegraphConfig) (*telegraph.Client, error) {
	opts := []telegraph.Option{telegraph.WithAuthor(cfg.AuthorName, cfg.AuthorURL)}
	if cfg.BaseURL != "" {
		opts = append(opts, telegraph.WithBaseURL(cfg.BaseURL))
	}
	tg := telegraph.New(cfg.AccessToken, opts...)
	if cfg.AccessToken != "" {
		return tg, nil
	}

	shortName := cfg.ShortName
	if shortName == "" {
		shortName = "SearchX"
	}
	token, err := tg.CreateAccount(ctx, shortName)
	if err != nil {
		return nil, fmt.Errorf("telegraph access token not configured and account creation failed: %w", err)
	}
	slog.Warn("created telegraph account; set telegraph.access_token or TELEGRAPH_ACCESS_TOKEN to reuse it",
		"short_name", shortName, "access_token", token)
	return tg, nil
}

// SearchClients provides the collaborators the search pipeline needs.
type SearchClients struct {
	Storage   search.Storage
	Publisher search.Publisher
}

// ForSearch returns clients scoped for the search pipeline.
func (c *Clients) ForSearch() *SearchClients {
	return &SearchClients{
		Storage:   drivestore.New(c.drive),
		Publisher: c.telegraph,
	}
}

// SlackClients provides access to the Slack API client, which may be nil.
type SlackClients struct {
	API *slack.Client
}

// ForSlack returns the client scoped for Slack reply delivery.
func (c *Clients) ForSlack() *SlackClients {
	return &SlackClients{
		API: c.slack,
	}
}
