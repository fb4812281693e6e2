package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *MetricsGateError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *MetricsGateError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func InvalidEndpoint(endpoint string, cause error) *MetricsGateError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "invalid export endpoint").
		WithContext("endpoint", endpoint)
}

// Capability errors

func CapabilityDenied(identity, capability string) *MetricsGateError {
	return New(CategoryCapability, SeverityWarning, "capability denied").
		WithContext("identity", identity).
		WithContext("capability", capability)
}

func CapabilityCheckFailed(identity string, cause error) *MetricsGateError {
	return Wrap(cause, CategoryCapability, SeverityError, "capability check failed").
		WithContext("identity", identity)
}

// Backend errors

func BackendInstall(cause error) *MetricsGateError {
	return Wrap(cause, CategoryBackend, SeverityFatal, "export sink installation failed")
}

func BackendRegister(metric string, cause error) *MetricsGateError {
	return Wrap(cause, CategoryBackend, SeverityError, "metric registration failed").
		WithContext("metric", metric)
}

func BackendPublish(metric string, cause error) *MetricsGateError {
	return Wrap(cause, CategoryBackend, SeverityWarning, "metric event publish failed").
		WithContext("metric", metric)
}

// Audit errors

func AuditStore(operation string, cause error) *MetricsGateError {
	return Wrap(cause, CategoryInternal, SeverityError, "audit store operation failed").
		WithContext("operation", operation)
}
