// Package ssm implements the credential store port over AWS Systems Manager
// Parameter Store. The API key is fetched decrypted once and cached for the
// process lifetime; rotating the key means restarting the service.
package ssm

import (
	"context"
	"sync"

	"dispatch/internal/pkg/errs"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
)

// parameterGetter is the slice of the SSM API the store needs.
type parameterGetter interface {
	GetParameterWithContext(
		ctx aws.Context, input *ssm.GetParameterInput, opts ...request.Option,
	) (*ssm.GetParameterOutput, error)
}

// ParameterStore implements ports.CredentialStore over SSM.
type ParameterStore struct {
	api           parameterGetter
	parameterName string

	mu     sync.Mutex
	cached string
}

// NewParameterStore creates a store reading the named parameter in the given
// region.
func NewParameterStore(parameterName string, region string) *ParameterStore {
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(region),
	}))
	return NewParameterStoreWithClient(ssm.New(sess), parameterName)
}

// NewParameterStoreWithClient creates a store over an explicit SSM client.
func NewParameterStoreWithClient(api parameterGetter, parameterName string) *ParameterStore {
	return &ParameterStore{
		api:           api,
		parameterName: parameterName,
	}
}

// APIKey returns the decrypted parameter value. The first successful fetch
// is cached; concurrent callers share one in-flight fetch via the mutex.
func (s *ParameterStore) APIKey(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached, nil
	}

	out, err := s.api.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.parameterName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}

	if out.Parameter == nil || out.Parameter.Value == nil || *out.Parameter.Value == "" {
		return "", errs.NewValueIsRequiredError(s.parameterName)
	}

	s.cached = *out.Parameter.Value
	return s.cached, nil
}
