package catalog

// Feature is a comparable platform capability
type Feature struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Feature categories
const (
	CategoryCompute    = "Compute & Infrastructure"
	CategoryStorage    = "Storage & Database"
	CategorySecurity   = "Security & Compliance"
	CategoryNetworking = "Networking & CDN"
	CategorySupport    = "Support & Services"
)

// Features is the fixed feature matrix, in display order
var Features = []Feature{
	{"Virtual Machines", CategoryCompute, "On-demand compute instances"},
	{"Serverless Computing", CategoryCompute, "Function-as-a-Service"},
	{"Container Services", CategoryCompute, "Kubernetes, Docker support"},
	{"Auto Scaling", CategoryCompute, "Automatic resource scaling"},
	{"Spot/Preemptible Instances", CategoryCompute, "Cost-effective interruptible instances"},
	{"GPU Instances", CategoryCompute, "AI/ML optimized compute"},

	{"Object Storage", CategoryStorage, "S3-compatible storage"},
	{"Block Storage", CategoryStorage, "Persistent disk volumes"},
	{"Managed Databases", CategoryStorage, "SQL, NoSQL managed services"},
	{"Backup & Recovery", CategoryStorage, "Automated backup solutions"},
	{"Data Archiving", CategoryStorage, "Long-term cold storage"},
	{"Data Lake Solutions", CategoryStorage, "Big data analytics storage"},

	{"Identity & Access Management", CategorySecurity, "IAM, RBAC"},
	{"Encryption at Rest", CategorySecurity, ""},
	{"Encryption in Transit", CategorySecurity, ""},
	{"DDoS Protection", CategorySecurity, ""},
	{"Compliance Certifications", CategorySecurity, ""},
	{"Security Monitoring", CategorySecurity, ""},
	{"Web Application Firewall", CategorySecurity, ""},

	{"Virtual Private Cloud", CategoryNetworking, ""},
	{"Load Balancing", CategoryNetworking, ""},
	{"Content Delivery Network", CategoryNetworking, ""},
	{"VPN & Direct Connect", CategoryNetworking, ""},
	{"DNS Services", CategoryNetworking, ""},

	{"24/7 Support", CategorySupport, ""},
	{"Enterprise Support", CategorySupport, ""},
	{"Documentation", CategorySupport, ""},
	{"Training & Certification", CategorySupport, ""},
}

// IsKnownFeature reports whether name is in the feature matrix
func IsKnownFeature(name string) bool {
	for _, f := range Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

// fullSupport marks every feature as supported, then applies overrides
func fullSupport(overrides map[string]Support) map[string]Support {
	out := make(map[string]Support, len(Features))
	for _, f := range Features {
		out[f.Name] = SupportYes
	}
	for name, s := range overrides {
		out[name] = s
	}
	return out
}
