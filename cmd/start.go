package cmd

import (
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storefront-kit/selectord/pkg/provider"
	"github.com/storefront-kit/selectord/pkg/runtime"
	"github.com/storefront-kit/selectord/pkg/service"
	"github.com/storefront-kit/selectord/pkg/store"
	selsync "github.com/storefront-kit/selectord/pkg/sync"
)

const (
	portFlagName           = "port"
	uriFlagName            = "uri"
	resyncScheduleFlagName = "resync-schedule"
	corsOriginsFlagName    = "cors-origins"
	sessionTTLFlagName     = "session-ttl"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start selectord",
	Long: `Load the header document, watch it for changes and serve the
resolved placements over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := store.NewState()
		mux, err := selsync.NewMux(state)
		if err != nil {
			return err
		}

		providerImpl := &provider.FilePathProvider{
			URI:            viper.GetString(uriFlagName),
			Store:          state,
			ResyncSchedule: viper.GetString(resyncScheduleFlagName),
		}
		log.Debugf("using filepath provider for %s", providerImpl.URI)

		serviceImpl := &service.HTTPService{
			HTTPServiceConfiguration: &service.HTTPServiceConfiguration{
				Port:        viper.GetInt32(portFlagName),
				CORSOrigins: viper.GetStringSlice(corsOriginsFlagName),
				SessionTTL:  viper.GetDuration(sessionTTLFlagName),
			},
			Store: state,
			Mux:   mux,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runtime.Start(ctx, serviceImpl, providerImpl, mux)
	},
}

func init() {
	flags := startCmd.Flags()
	flags.Int32P(portFlagName, "p", 8080, "Port to listen on")
	flags.StringP(uriFlagName, "f", "", "Path of the header document to serve")
	flags.StringP(resyncScheduleFlagName, "r", "@every 5m", "Cron schedule for re-reading the document, empty to disable")
	flags.StringSlice(corsOriginsFlagName, nil, "Storefront origins allowed to call the service, all when empty")
	flags.Duration(sessionTTLFlagName, 30*time.Minute, "Idle time after which a page session is discarded")

	_ = viper.BindPFlag(portFlagName, flags.Lookup(portFlagName))
	_ = viper.BindPFlag(uriFlagName, flags.Lookup(uriFlagName))
	_ = viper.BindPFlag(resyncScheduleFlagName, flags.Lookup(resyncScheduleFlagName))
	_ = viper.BindPFlag(corsOriginsFlagName, flags.Lookup(corsOriginsFlagName))
	_ = viper.BindPFlag(sessionTTLFlagName, flags.Lookup(sessionTTLFlagName))

	rootCmd.AddCommand(startCmd)
}

