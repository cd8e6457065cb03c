package registry

import "thop-experiments/internal/domain"

// tuned holds the per-instance-class configurations found by offline tuning.
var tuned = map[domain.RegistryKey]domain.ParameterConfiguration{
	key("eil51", 1, "bsc"):    aco("100", "1.03", "2.64", "0.82", "2"),
	key("eil51", 1, "unc"):    aco("200", "0.91", "4.00", "0.48", "1"),
	key("eil51", 1, "usw"):    aco("1000", "0.74", "4.22", "0.61", "3"),
	key("eil51", 3, "bsc"):    aco("50", "1.00", "3.81", "0.37", "1"),
	key("eil51", 3, "unc"):    aco("200", "0.93", "4.12", "0.69", "2"),
	key("eil51", 3, "usw"):    aco("20", "1.00", "3.87", "0.49", "1"),
	key("eil51", 5, "bsc"):    aco("200", "0.74", "3.30", "0.65", "4"),
	key("eil51", 5, "unc"):    aco("50", "0.98", "3.65", "0.44", "2"),
	key("eil51", 5, "usw"):    aco("1000", "0.79", "4.36", "0.83", "1"),
	key("eil51", 10, "bsc"):   aco("20", "1.15", "4.94", "0.88", "2"),
	key("eil51", 10, "unc"):   aco("100", "0.86", "4.34", "0.74", "1"),
	key("eil51", 10, "usw"):   aco("50", "0.93", "6.15", "0.69", "1"),
	key("pr107", 1, "bsc"):    aco("200", "0.84", "3.91", "0.94", "5"),
	key("pr107", 1, "unc"):    aco("100", "1.11", "3.16", "0.67", "2"),
	key("pr107", 1, "usw"):    aco("50", "0.94", "3.72", "0.61", "3"),
	key("pr107", 3, "bsc"):    aco("200", "0.79", "3.50", "0.28", "3"),
	key("pr107", 3, "unc"):    aco("200", "0.78", "3.31", "0.74", "5"),
	key("pr107", 3, "usw"):    aco("20", "0.84", "3.73", "0.62", "2"),
	key("pr107", 5, "bsc"):    aco("1000", "0.88", "4.39", "0.72", "3"),
	key("pr107", 5, "unc"):    aco("500", "0.84", "4.00", "0.64", "1"),
	key("pr107", 5, "usw"):    aco("200", "0.88", "2.75", "0.88", "4"),
	key("pr107", 10, "bsc"):   aco("200", "0.75", "3.36", "0.70", "5"),
	key("pr107", 10, "unc"):   aco("200", "0.97", "3.98", "0.69", "1"),
	key("pr107", 10, "usw"):   aco("200", "0.83", "3.76", "0.49", "1"),
	key("a280", 1, "bsc"):     aco("200", "0.75", "6.28", "0.61", "1"),
	key("a280", 1, "unc"):     aco("500", "0.86", "7.13", "0.38", "1"),
	key("a280", 1, "usw"):     aco("50", "0.96", "4.15", "0.48", "2"),
	key("a280", 3, "bsc"):     aco("50", "0.75", "6.16", "0.40", "2"),
	key("a280", 3, "unc"):     aco("200", "0.85", "7.62", "0.35", "1"),
	key("a280", 3, "usw"):     aco("500", "0.88", "5.28", "0.48", "1"),
	key("a280", 5, "bsc"):     aco("200", "0.82", "7.91", "0.37", "1"),
	key("a280", 5, "unc"):     aco("200", "0.85", "9.32", "0.49", "1"),
	key("a280", 5, "usw"):     aco("200", "0.93", "4.86", "0.26", "1"),
	key("a280", 10, "bsc"):    aco("100", "0.74", "6.34", "0.60", "1"),
	key("a280", 10, "unc"):    aco("50", "0.82", "8.63", "0.62", "1"),
	key("a280", 10, "usw"):    aco("200", "0.78", "6.79", "0.58", "1"),
	key("dsj1000", 1, "bsc"):  aco("500", "2.10", "8.95", "0.14", "1"),
	key("dsj1000", 1, "unc"):  aco("200", "0.91", "6.69", "0.39", "1"),
	key("dsj1000", 1, "usw"):  aco("500", "0.79", "8.22", "0.51", "1"),
	key("dsj1000", 3, "bsc"):  aco("500", "2.21", "6.67", "0.27", "1"),
	key("dsj1000", 3, "unc"):  aco("100", "2.74", "5.89", "0.16", "4"),
	key("dsj1000", 3, "usw"):  aco("100", "0.82", "8.71", "0.35", "1"),
	key("dsj1000", 5, "bsc"):  aco("100", "7.55", "6.20", "0.06", "3"),
	key("dsj1000", 5, "unc"):  aco("200", "5.17", "7.26", "0.07", "2"),
	key("dsj1000", 5, "usw"):  aco("100", "0.96", "6.87", "0.27", "1"),
	key("dsj1000", 10, "bsc"): aco("50", "1.12", "7.27", "0.25", "3"),
	key("dsj1000", 10, "unc"): aco("200", "0.88", "7.34", "0.43", "1"),
	key("dsj1000", 10, "usw"): aco("100", "0.99", "7.99", "0.34", "2"),
}

// general is used whenever per-instance tuning is not requested.
var general = aco("196", "1.24", "5.46", "0.51", "1")

func aco(ants, alpha, beta, rho, ptries string) domain.ParameterConfiguration {
	return domain.ParameterConfiguration{
		{Flag: "--ants", Value: ants},
		{Flag: "--alpha", Value: alpha},
		{Flag: "--beta", Value: beta},
		{Flag: "--rho", Value: rho},
		{Flag: "--ptries", Value: ptries},
	}
}

func key(family string, itemsPerCity int, knapsackType string) domain.RegistryKey {
	return domain.RegistryKey{Family: family, ItemsPerCity: itemsPerCity, KnapsackType: knapsackType}
}
