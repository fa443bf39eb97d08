package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Policy tunes the data integrity scan and reconciliation without a
// restart. It is loaded from an optional policy.yml and hot-reloaded
// when the file changes.
type Policy struct {
	// PaidPaymentMethod is stamped on invoices synthesized with a paid
	// status during reconciliation.
	PaidPaymentMethod string `mapstructure:"paidPaymentMethod"`
	// RequireContact controls the missing-contact warning on clients.
	RequireContact bool `mapstructure:"requireContact"`
	// WarnUnlinkedPayments controls the unlinked payment-history warning.
	WarnUnlinkedPayments bool `mapstructure:"warnUnlinkedPayments"`
	// InvoiceNumberTemplate overrides the invoice number format.
	InvoiceNumberTemplate string `mapstructure:"invoiceNumberTemplate"`
}

func DefaultPolicy() Policy {
	return Policy{
		PaidPaymentMethod:    "Transfer Bank",
		RequireContact:       true,
		WarnUnlinkedPayments: true,
	}
}

// PolicyHolder exposes the current policy through an atomic value so a
// reload never tears a scan in progress.
type PolicyHolder struct {
	current atomic.Value // holds Policy
}

func NewPolicyHolder() (*PolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("policy")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/riasku/config") // Volume-mounted config
	v.AddConfigPath("/etc/riasku")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("RIASKU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPolicy()
	v.SetDefault("policy.paidPaymentMethod", defaults.PaidPaymentMethod)
	v.SetDefault("policy.requireContact", defaults.RequireContact)
	v.SetDefault("policy.warnUnlinkedPayments", defaults.WarnUnlinkedPayments)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// no policy file: defaults apply
	}

	var policy Policy
	if err := v.UnmarshalKey("policy", &policy); err != nil {
		return nil, err
	}
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}

	holder := &PolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated Policy
		if err := v.UnmarshalKey("policy", &updated); err != nil {
			log.Printf("[policy] reload failed: %v", err)
			return
		}
		if err := validatePolicy(updated); err != nil {
			log.Printf("[policy] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[policy] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PolicyHolder) Get() Policy {
	return h.current.Load().(Policy)
}

// NewStaticPolicyHolder returns a holder pinned to the given policy,
// bypassing file discovery. Used by tests.
func NewStaticPolicyHolder(policy Policy) *PolicyHolder {
	holder := &PolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func validatePolicy(policy Policy) error {
	if strings.TrimSpace(policy.PaidPaymentMethod) == "" {
		return errors.New("policy.paidPaymentMethod cannot be empty")
	}
	return nil
}
