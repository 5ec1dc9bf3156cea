package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeylink/honeylink-core/pkg/discovery"
	"github.com/honeylink/honeylink-core/pkg/honeyid"
)

func newDiscoverCmd() *cobra.Command {
	var deviceID, name string
	var port uint16
	var seconds int

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Announce and browse for peers for a fixed window, printing DeviceFound/DeviceLost events",
		RunE: func(cmd *cobra.Command, args []string) error {
			self, err := honeyid.NewDeviceId(deviceID)
			if err != nil {
				return fmt.Errorf("device-id: %w", err)
			}

			mgr := discovery.NewDiscoveryManager(discovery.NewMDNSProtocol(), discovery.NewBLEBeaconProtocol())
			mgr.SetStrategy(discovery.DefaultStrategy())

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(seconds)*time.Second)
			defer cancel()

			if err := mgr.Start(ctx, discovery.LocalPeer{
				DeviceID:   self.String(),
				Name:       name,
				DeviceType: discovery.DeviceTypeDesktop,
				Version:    "1.0.0",
				Port:       port,
			}); err != nil {
				return fmt.Errorf("start discovery: %w", err)
			}
			defer mgr.Stop()

			for {
				select {
				case <-ctx.Done():
					snapshot := mgr.GetDevices()
					fmt.Printf("discovery window closed, %d peer(s) cached\n", len(snapshot))
					for id, peer := range snapshot {
						fmt.Printf("  %s: %s (%s)\n", id, peer.Name, peer.DeviceType)
					}
					return nil
				case ev := <-mgr.Events():
					fmt.Printf("%s %s (%s)\n", ev.Kind, ev.Peer.DeviceID, ev.Peer.Name)
				}
			}
		},
	}

	cmd.Flags().StringVar(&deviceID, "device-id", "HL-HARNESS-0001", "this host's device id to announce")
	cmd.Flags().StringVar(&name, "name", "honeylink-harness", "friendly name to announce")
	cmd.Flags().Uint16Var(&port, "port", 7843, "QUIC port to advertise in the mDNS TXT record")
	cmd.Flags().IntVar(&seconds, "seconds", 10, "how long to browse before printing the peer cache and exiting")
	return cmd
}
