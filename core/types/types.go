// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "strings"

// Provider represents a cloud provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderAzure  Provider = "azure"
	ProviderGCP    Provider = "gcp"
	ProviderHuawei Provider = "huawei"
)

// AllProviders is the stable iteration order used wherever providers are compared.
// Ties in cost comparisons are resolved in favour of the earlier entry.
var AllProviders = []Provider{ProviderAWS, ProviderAzure, ProviderGCP, ProviderHuawei}

// String returns the string representation of the provider
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the provider is a known provider
func (p Provider) IsValid() bool {
	switch p {
	case ProviderAWS, ProviderAzure, ProviderGCP, ProviderHuawei:
		return true
	default:
		return false
	}
}

// ParseProvider normalizes a provider name
func ParseProvider(s string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// OSFamily is the pricing family an operating system collapses to
type OSFamily string

const (
	OSFamilyLinux   OSFamily = "linux"
	OSFamilyWindows OSFamily = "windows"
)

// AllOSFamilies lists every pricing family
var AllOSFamilies = []OSFamily{OSFamilyLinux, OSFamilyWindows}

// IsValid checks the family is known
func (f OSFamily) IsValid() bool {
	return f == OSFamilyLinux || f == OSFamilyWindows
}

// OS is the operating system requested for an instance
type OS string

const (
	OSUbuntuLTS         OS = "ubuntu-lts"
	OSCentOS            OS = "centos"
	OSRHEL              OS = "rhel"
	OSDebian            OS = "debian"
	OSWindowsServer2019 OS = "windows-server-2019"
	OSWindowsServer2022 OS = "windows-server-2022"
)

// AllOS lists every supported operating system
var AllOS = []OS{OSUbuntuLTS, OSCentOS, OSRHEL, OSDebian, OSWindowsServer2019, OSWindowsServer2022}

// IsValid checks the OS is supported
func (o OS) IsValid() bool {
	for _, known := range AllOS {
		if o == known {
			return true
		}
	}
	return false
}

// Family collapses the OS to its pricing family
func (o OS) Family() OSFamily {
	if strings.HasPrefix(string(o), "windows") {
		return OSFamilyWindows
	}
	return OSFamilyLinux
}

// DiskType is the block storage tier
type DiskType string

const (
	DiskStandardHDD DiskType = "standard-hdd"
	DiskStandardSSD DiskType = "standard-ssd"
	DiskPremiumSSD  DiskType = "premium-ssd"
	DiskUltraSSD    DiskType = "ultra-ssd"
)

// AllDiskTypes lists every storage tier
var AllDiskTypes = []DiskType{DiskStandardHDD, DiskStandardSSD, DiskPremiumSSD, DiskUltraSSD}

// IsValid checks the disk type is known
func (d DiskType) IsValid() bool {
	switch d {
	case DiskStandardHDD, DiskStandardSSD, DiskPremiumSSD, DiskUltraSSD:
		return true
	default:
		return false
	}
}

// UseCase is the workload category
type UseCase string

const (
	UseCaseWebApp        UseCase = "web-app"
	UseCaseDatabase      UseCase = "database"
	UseCaseERP           UseCase = "erp"
	UseCaseArchiveBackup UseCase = "archive-backup"
	UseCaseHighTraffic   UseCase = "high-traffic"
	UseCaseGeneralServer UseCase = "general-server"
)

// AllUseCases lists every workload category
var AllUseCases = []UseCase{
	UseCaseWebApp, UseCaseDatabase, UseCaseERP,
	UseCaseArchiveBackup, UseCaseHighTraffic, UseCaseGeneralServer,
}

// IsValid checks the use case is known
func (u UseCase) IsValid() bool {
	for _, known := range AllUseCases {
		if u == known {
			return true
		}
	}
	return false
}

// Region represents a coarse geographic pricing region
type Region string

const (
	RegionEurope       Region = "europe"
	RegionMiddleEast   Region = "middle-east"
	RegionAsiaPacific  Region = "asia-pacific"
	RegionNorthAmerica Region = "north-america"
	RegionLatinAmerica Region = "latin-america"
	RegionTurkeyLocal  Region = "turkey-local"
)

// AllRegions lists every pricing region
var AllRegions = []Region{
	RegionEurope, RegionMiddleEast, RegionAsiaPacific,
	RegionNorthAmerica, RegionLatinAmerica, RegionTurkeyLocal,
}

// String returns the string representation
func (r Region) String() string {
	return string(r)
}

// IsValid checks the region is known
func (r Region) IsValid() bool {
	for _, known := range AllRegions {
		if r == known {
			return true
		}
	}
	return false
}

// Severity grades a migration risk
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)
