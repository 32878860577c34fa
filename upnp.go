package main

import (
	"fmt"

	upnp "github.com/jcuga/go-upnp"
	"github.com/sirupsen/logrus"
)

// SetupUPnP attempts to forward the node's P2P port on a UPnP-capable
// router, returning the router's external IP on success.
func SetupUPnP(port string) (string, error) {
	log := logrus.WithField("component", "upnp")

	d, err := upnp.Discover()
	if err != nil {
		return "", fmt.Errorf("%w: discover router: %v", ErrIO, err)
	}

	externalIP, err := d.ExternalIP()
	if err != nil {
		return "", fmt.Errorf("%w: read external ip: %v", ErrIO, err)
	}

	var portNum uint16
	if _, err := fmt.Sscanf(port, "%d", &portNum); err != nil {
		return externalIP, fmt.Errorf("%w: invalid port %q: %v", ErrIO, port, err)
	}

	if err := d.Forward(portNum, "CarbonChain Node P2P", "TCP"); err != nil {
		return externalIP, fmt.Errorf("%w: forward port %s: %v", ErrIO, port, err)
	}

	log.WithFields(logrus.Fields{"external_ip": externalIP, "port": port}).Info("upnp forward established")
	return externalIP, nil
}
