package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ferristseng/go-lifx"
	"github.com/ferristseng/go-lifx/common"
	"github.com/ferristseng/go-lifx/wire"
)

var (
	cmdList = &cobra.Command{
		Use:     `list`,
		Short:   `list devices discovered on the LAN`,
		PreRun:  setupClient,
		Run:     listDevices,
		PostRun: closeClient,
	}

	cmdOn = &cobra.Command{
		Use:     `on`,
		Short:   `power on all devices`,
		PreRun:  setupClient,
		Run:     powerOn,
		PostRun: closeClient,
	}

	cmdOff = &cobra.Command{
		Use:     `off`,
		Short:   `power off all devices`,
		PreRun:  setupClient,
		Run:     powerOff,
		PostRun: closeClient,
	}

	cmdColor = &cobra.Command{
		Use:     `color <hue> <saturation> <brightness> <kelvin>`,
		Short:   `set the color on all lights`,
		PreRun:  setupClient,
		Run:     setColor,
		PostRun: closeClient,
	}
)

func listDevices(c *cobra.Command, args []string) {
	client.Discover(flagInterval, lifx.DiscoverLabel|lifx.DiscoverPower|lifx.DiscoverLocation|lifx.DiscoverGroup)
	time.Sleep(flagWait)

	devices := client.Devices()
	if len(devices) == 0 {
		logger.Warnln(`No devices found`)
		return
	}
	for _, dev := range devices {
		fmt.Printf("%-16x %-24v label=%q location=%q group=%q power=%v\n",
			dev.Target, dev.Addr, dev.Label, dev.Location, dev.Group, dev.Power)
	}
}

func powerOn(c *cobra.Command, args []string) {
	broadcast(wire.SetPower{Level: common.PowerMax})
}

func powerOff(c *cobra.Command, args []string) {
	broadcast(wire.SetPower{Level: common.PowerStandby})
}

func setColor(c *cobra.Command, args []string) {
	if len(args) != 4 {
		_ = c.Usage()
		logger.Fatalln(`Expected <hue> <saturation> <brightness> <kelvin>`)
	}
	fields := make([]uint16, 4)
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				`argument`: arg,
				`error`:    err,
			}).Fatalln(`Invalid color component`)
		}
		fields[i] = uint16(v)
	}
	color, err := common.NewColor(fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid color`)
	}
	broadcast(wire.LightSetColor{
		Color:    color,
		Duration: uint32(time.Second / time.Millisecond),
	})
}

func broadcast(payload wire.Payload) {
	if err := client.Broadcast(payload); err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed sending broadcast`)
	}
	// Give the datagram a moment to leave before the socket closes
	time.Sleep(100 * time.Millisecond)
}
