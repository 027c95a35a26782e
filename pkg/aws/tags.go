package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

const (
	// TagKeyName is well-known within AWS itself.
	TagKeyName = "Name"
	// TagKeyProject groups every resource created by the start action. The
	// clean and info actions select on it.
	TagKeyProject = "project"
)

// projectTagSpecification tags a resource with its project, using the project
// as the Name as well.
func projectTagSpecification(rt types.ResourceType, project string) []types.TagSpecification {
	if project == "" {
		return nil
	}
	return []types.TagSpecification{
		{
			ResourceType: rt,
			Tags: []types.Tag{
				{Key: aws.String(TagKeyName), Value: aws.String(project)},
				{Key: aws.String(TagKeyProject), Value: aws.String(project)},
			},
		},
	}
}

// NewFilter builds a describe filter matching name against any of values.
func NewFilter(name string, values ...string) types.Filter {
	return types.Filter{
		Name:   aws.String(name),
		Values: values,
	}
}

// ProjectFilter matches resources carrying the project tag.
func ProjectFilter(project string) types.Filter {
	return NewFilter("tag:"+TagKeyProject, project)
}
