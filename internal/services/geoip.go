package services

import (
	"log/slog"
	"net"
	"sync"

	"linkbio/internal/config"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves visitor IPs to a country name for visit enrichment.
// The MaxMind database is optional; without one every lookup returns
// "Unknown" and visits are still recorded.
type GeoIPService struct {
	cfg    config.Config
	logger *slog.Logger
	mu     sync.RWMutex
	reader *geoip2.Reader
}

func NewGeoIPService(cfg config.Config, logger *slog.Logger) *GeoIPService {
	return &GeoIPService{cfg: cfg, logger: logger}
}

func (s *GeoIPService) Init() {
	reader, err := geoip2.Open(s.cfg.GeoIPDBPath)
	if err != nil {
		s.logger.Warn("GeoIP database unavailable, country lookups disabled", "path", s.cfg.GeoIPDBPath, "error", err)
		return
	}

	s.mu.Lock()
	s.reader = reader
	s.mu.Unlock()

	s.logger.Info("GeoIP database loaded", "epoch", reader.Metadata().BuildEpoch)
}

func (s *GeoIPService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader != nil {
		s.reader.Close()
		s.reader = nil
	}
}

func (s *GeoIPService) CountryFor(ipStr string) string {
	if ipStr == "127.0.0.1" || ipStr == "::1" {
		return "Localhost"
	}

	s.mu.RLock()
	reader := s.reader
	s.mu.RUnlock()

	if reader == nil {
		return "Unknown"
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "Unknown"
	}

	record, err := reader.Country(ip)
	if err != nil {
		s.logger.Error("GeoIP lookup failed", "ip", ipStr, "error", err)
		return "Unknown"
	}

	if name, ok := record.Country.Names["en"]; ok && name != "" {
		return name
	}
	if record.Country.IsoCode != "" {
		return record.Country.IsoCode
	}
	return "Unknown"
}
