package email

import (
	"context"
	"encoding/json"
	e "fintrack/internal/core/domain/errors"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type templatedEmailSender interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

// ResetLinkSender delivers password reset links with an SES template.
type ResetLinkSender struct {
	ses templatedEmailSender
	// This address must be verified with Amazon SES.
	sender                string
	passwordResetTemplate string
	passwordResetBaseUrl  url.URL
}

func NewResetLinkSender(
	awsConfig aws.Config,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
) *ResetLinkSender {
	return newResetLinkSender(ses.NewFromConfig(awsConfig), sender, passwordResetTemplate, passwordResetBaseUrl)
}

func newResetLinkSender(
	client templatedEmailSender,
	sender string,
	passwordResetTemplate string,
	passwordResetBaseUrl url.URL,
) *ResetLinkSender {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	return &ResetLinkSender{
		ses:                   client,
		sender:                sender,
		passwordResetTemplate: passwordResetTemplate,
		passwordResetBaseUrl:  passwordResetBaseUrl,
	}
}

func (s *ResetLinkSender) SendResetLink(ctx context.Context, token passwordreset.ResetToken) error {
	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			PasswordResetUrl: token.Token.ResetURL(s.passwordResetBaseUrl),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(token.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type passwordResetTemplateParams struct {
	PasswordResetUrl string `json:"passwordResetUrl"`
}
