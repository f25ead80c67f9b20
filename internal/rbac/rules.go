package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"content:view",
		"exercise:view",
		"attempt:create",
		"attempt:view-own",
		"progress:view",
	},
	"admin": {
		"*", // everything
	},
}
