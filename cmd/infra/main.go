package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"notes-backend/deploy/infra"

	"github.com/alexflint/go-arg"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

type stackArgs struct {
	Env         string `arg:"--env,required" help:"staging or production"`
	Region      string `arg:"--region,env:AWS_REGION" default:"eu-west-1" help:"region of the api, function and table"`
	Scoped      bool   `arg:"--scoped,env:SCOPE_BY_OWNER" default:"true" help:"key notes by id and owner"`
	UserPoolARN string `arg:"--user-pool-arn,env:USER_POOL_ARN" help:"cognito user pool the api authorizer trusts, required when scoped"`
}

type renderCmd struct {
	stackArgs
}

type ensureTableCmd struct {
	stackArgs
	Endpoint string        `arg:"--endpoint,env:DYNAMODB_ENDPOINT" help:"dynamodb endpoint override, for local dynamodb"`
	Wait     time.Duration `arg:"--wait" default:"5m" help:"how long to wait for the table to become active"`
}

type args struct {
	Render      *renderCmd      `arg:"subcommand:render" help:"print the stack as yaml"`
	EnsureTable *ensureTableCmd `arg:"subcommand:ensure-table" help:"create the notes table if it does not exist"`
}

func (args) Description() string {
	return "\ndescribe and provision the notes stack\n"
}

func main() {
	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	switch {
	case a.Render != nil:
		err = render(a.Render.stackArgs, os.Stdout)
	case a.EnsureTable != nil:
		err = ensureTable(ctx, a.EnsureTable, logger)
	}
	if err != nil {
		logger.Fatal("error", zap.Error(err))
	}
}

func stack(s stackArgs) (*infra.Stack, error) {
	env, err := infra.LookupEnvironment(s.Env)
	if err != nil {
		return nil, err
	}
	if s.UserPoolARN != "" {
		env.UserPoolARN = s.UserPoolARN
	}
	st := infra.NewStack(env, s.Region, s.Scoped)
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st, nil
}

func render(s stackArgs, out io.Writer) error {
	st, err := stack(s)
	if err != nil {
		return err
	}
	data, err := st.Render()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func ensureTable(ctx context.Context, cmd *ensureTableCmd, logger *zap.Logger) error {
	st, err := stack(cmd.stackArgs)
	if err != nil {
		return err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cmd.Region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cmd.Endpoint != "" {
			o.BaseEndpoint = aws.String(cmd.Endpoint)
		}
	})

	_, err = infra.EnsureTable(ctx, client, infra.TableInput(st.Table), cmd.Wait, logger)
	return err
}
