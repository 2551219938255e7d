package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

type IMailService interface {
	SendQuizResultEmail(ctx context.Context, to, firstName string, result ScoreResult) error
}

// ResendConfig holds the Resend credentials plus branding.
type ResendConfig struct {
	APIKey     string
	From       string // e.g. "Vigor <ergebnis@vigor.app>"
	AppName    string
	AppBaseURL string
}

type resendMailService struct {
	cfg     ResendConfig
	client  *resend.Client
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewResendMailService(cfg ResendConfig) IMailService {
	return &resendMailService{
		cfg:     cfg,
		client:  resend.NewClient(cfg.APIKey),
		htmlTpl: template.Must(template.New("resultHTML").Parse(resultHTMLTemplate)),
		textTpl: template.Must(template.New("resultText").Parse(resultTextTemplate)),
	}
}

type resultEmailData struct {
	FirstName    string
	Score        int
	Testosterone int
	TLevel       string
	RiskLevel    string
	Tier         string
	AppName      string
	ResultURL    string
}

func (s *resendMailService) SendQuizResultEmail(ctx context.Context, to, firstName string, result ScoreResult) error {
	data := resultEmailData{
		FirstName:    firstName,
		Score:        result.TotalScore,
		Testosterone: int(result.EstimatedTestosterone.Value),
		TLevel:       result.EstimatedTestosterone.Level,
		RiskLevel:    result.Level,
		Tier:         result.RecommendedTier,
		AppName:      s.cfg.AppName,
		ResultURL:    fmt.Sprintf("%s/ergebnis?score=%d", s.cfg.AppBaseURL, result.TotalScore),
	}

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}

	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: fmt.Sprintf("Dein Testosteron-Index: %d von 100", result.TotalScore),
		Html:    hb.String(),
		Text:    tb.String(),
	})
	return err
}

const resultHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>Dein Ergebnis</title>
  <style>
    body { margin: 0; padding: 0; background: #0f172a; color: #ffffff;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .wrapper { width: 100%; padding: 40px 16px; box-sizing: border-box; }
    .container { max-width: 600px; margin: 0 auto; background: #1e293b;
      border-radius: 16px; overflow: hidden; }
    .header { padding: 32px 32px 24px; border-bottom: 1px solid rgba(148, 163, 184, 0.1); }
    .brand { font-weight: 700; letter-spacing: 0.5px; font-size: 22px;
      color: #60a5fa; text-transform: uppercase; }
    .hero { padding: 32px; }
    .score { font-size: 48px; font-weight: 800; color: #60a5fa; }
    .row { margin: 12px 0; color: #cbd5e1; }
    .btn { display: inline-block; margin-top: 24px; padding: 14px 28px; background: #60a5fa;
      color: #0f172a; border-radius: 10px; text-decoration: none; font-weight: 700; }
    .footer { padding: 24px 32px; color: #64748b; font-size: 13px; }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header"><div class="brand">{{.AppName}}</div></div>
      <div class="hero">
        <h1>Hey {{.FirstName}}, dein Ergebnis ist da</h1>
        <div class="score">{{.Score}} / 100</div>
        <div class="row">Geschätztes Testosteron: {{.Testosterone}} ng/dL ({{.TLevel}})</div>
        <div class="row">Risiko-Einstufung: {{.RiskLevel}}</div>
        <div class="row">Empfohlenes Programm: {{.Tier}}</div>
        <a class="btn" href="{{.ResultURL}}">Ergebnis im Detail ansehen</a>
      </div>
      <div class="footer">{{.AppName}} — du erhältst diese Mail, weil du den Testosteron-Index-Test abgeschlossen hast.</div>
    </div>
  </div>
</body>
</html>`

const resultTextTemplate = `Hey {{.FirstName}},

dein Testosteron-Index: {{.Score}} / 100
Geschätztes Testosteron: {{.Testosterone}} ng/dL ({{.TLevel}})
Risiko-Einstufung: {{.RiskLevel}}
Empfohlenes Programm: {{.Tier}}

Details: {{.ResultURL}}

— {{.AppName}}
`
